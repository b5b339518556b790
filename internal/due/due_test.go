package due

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 41, 12, 500, time.UTC)

	tests := []struct {
		name string
		expr string
		want time.Time
	}{
		{"today", "today", time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)},
		{"today mixed case", " Today ", time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)},
		{"tomorrow", "tomorrow", time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC)},
		{"days", "3 days", time.Date(2024, 1, 4, 17, 0, 0, 0, time.UTC)},
		{"single day", "1 day", time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC)},
		{"days no space", "10days", time.Date(2024, 1, 11, 17, 0, 0, 0, time.UTC)},
		{"zero days", "0 days", time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)},
		{"days across month", "45 days", time.Date(2024, 2, 15, 17, 0, 0, 0, time.UTC)},
		{"a century of days", "36500 days", time.Date(2123, 12, 8, 17, 0, 0, 0, time.UTC)},
		{"month/day", "5/31", time.Date(2024, 5, 31, 17, 0, 0, 0, time.UTC)},
		{"month-day", "12-25", time.Date(2024, 12, 25, 17, 0, 0, 0, time.UTC)},
		{"year/month/day", "2017/5/31", time.Date(2017, 5, 31, 17, 0, 0, 0, time.UTC)},
		{"year-month-day", "2025-01-09", time.Date(2025, 1, 9, 17, 0, 0, 0, time.UTC)},
		{"leap day", "2024/02/29", time.Date(2024, 2, 29, 17, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr, now)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %s, got %s", tt.want, *got)
		})
	}
}

func TestParse_TodayIgnoresTimeOfDay(t *testing.T) {
	for _, hour := range []int{0, 12, 17, 23} {
		now := time.Date(2024, 6, 10, hour, 59, 59, 999, time.UTC)
		got, err := Parse("today", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC), *got)
	}
}

func TestParse_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 3, 9, 22, 0, 0, 0, loc)

	got, err := Parse("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, time.Date(2024, 3, 10, 17, 0, 0, 0, loc), *got)
}

func TestParse_Empty(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, expr := range []string{"", "   "} {
		got, err := Parse(expr, now)
		assert.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []string{
		"13/40",
		"2023/02/29",
		"0/10",
		"4/31",
		"2024/13/01",
		"2024/1/0",
		"next wednesday",
		"yesterday",
		"-3 days",
		"3 weeks",
		"5/31/2024/1",
		"99999999999999999999 days",
		"9223372036854775807 days",
		"100000000000 days",
		"2920000 days",
		"10000/1/1",
		"5.31",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			got, err := Parse(expr, now)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
			assert.Contains(t, err.Error(), expr)
		})
	}
}

func TestFormat(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, loc)
	dueAt := func(y int, m time.Month, d, h, mm int) *time.Time {
		ts := time.Date(y, m, d, h, mm, 0, 0, loc)
		return &ts
	}

	tests := []struct {
		name string
		due  *time.Time
		want string
	}{
		{"unscheduled", nil, "Unscheduled"},
		{"yesterday", dueAt(2024, 1, 9, 17, 0), "Past Due"},
		{"long ago", dueAt(2023, 6, 1, 9, 0), "Past Due"},
		{"earlier today", dueAt(2024, 1, 10, 7, 0), "Today 7:00 am"},
		{"today afternoon", dueAt(2024, 1, 10, 17, 0), "Today 5:00 pm"},
		{"today noon", dueAt(2024, 1, 10, 12, 5), "Today 12:05 pm"},
		{"today midnight", dueAt(2024, 1, 10, 0, 0), "Today 12:00 am"},
		{"tomorrow", dueAt(2024, 1, 11, 9, 30), "Tomorrow 9:30 am"},
		{"later", dueAt(2024, 1, 12, 23, 59), "2024-01-12 11:59 pm"},
		{"next year", dueAt(2025, 3, 1, 13, 7), "2025-03-01 1:07 pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.due, now, loc))
		})
	}
}

func TestFormat_PastDueOneDayBack(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	assert.Equal(t, "Past Due", Format(&yesterday, now, time.UTC))
}

func TestFormat_ConvertsToLocalZone(t *testing.T) {
	// 02:00 UTC on the 11th is still the evening of the 10th in New York time.
	ny := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, ny)
	dueUTC := time.Date(2024, 1, 11, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today 9:00 pm", Format(&dueUTC, now, ny))
	assert.Equal(t, "Tomorrow 2:00 am", Format(&dueUTC, now.In(time.UTC), time.UTC))
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	today := now.Add(5 * time.Hour)
	tomorrow := now.AddDate(0, 0, 1)
	later := now.AddDate(0, 0, 2)

	assert.Equal(t, Unscheduled, Classify(nil, now, time.UTC))
	assert.Equal(t, PastDue, Classify(&past, now, time.UTC))
	assert.Equal(t, Today, Classify(&today, now, time.UTC))
	assert.Equal(t, Tomorrow, Classify(&tomorrow, now, time.UTC))
	assert.Equal(t, Later, Classify(&later, now, time.UTC))
}

func TestParseThenFormat(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	d, err := Parse("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, "Tomorrow 5:00 pm", Format(d, now, time.UTC))

	d, err = Parse("3 days", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-04 5:00 pm", Format(d, now, time.UTC))
}
