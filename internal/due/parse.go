// Package due interprets due-date expressions typed on the command line and
// renders stored due dates as short relative labels.
package due

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cards created from an expression are due at 17:00 local time.
const (
	DefaultHour   = 17
	DefaultMinute = 0
)

// MaxYear is the last year an expression may resolve to.
const MaxYear = 9999

// ErrInvalidFormat is returned when an expression matches no known form or
// names a date that does not exist.
var ErrInvalidFormat = errors.New("invalid due date format")

var (
	daysPattern     = regexp.MustCompile(`^(\d+)\s*days?$`)
	monthDayPattern = regexp.MustCompile(`^(\d+)[/-](\d+)$`)
	fullDatePattern = regexp.MustCompile(`^(\d+)[/-](\d+)[/-](\d+)$`)
)

// Parse interprets expr relative to now and returns the due timestamp in
// now's location. An empty expression returns nil and no error.
//
// Recognized forms, first match wins:
//
//	today            today at 17:00
//	tomorrow         tomorrow at 17:00
//	N day | N days   N days from today at 17:00
//	M/D | M-D        this year
//	Y/M/D | Y-M-D
func Parse(expr string, now time.Time) (*time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return nil, nil
	}

	switch s {
	case "today":
		return at(now, 0), nil
	case "tomorrow":
		return at(now, 1), nil
	}

	if m := daysPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxDays(now) {
			return nil, invalid(expr)
		}
		t := at(now, n)
		if t.Year() > MaxYear {
			return nil, invalid(expr)
		}
		return t, nil
	}

	if m := monthDayPattern.FindStringSubmatch(s); m != nil {
		nums, err := atoiAll(m[1:])
		if err != nil {
			return nil, invalid(expr)
		}
		return calendarDate(expr, now.Year(), nums[0], nums[1], now.Location())
	}

	if m := fullDatePattern.FindStringSubmatch(s); m != nil {
		nums, err := atoiAll(m[1:])
		if err != nil {
			return nil, invalid(expr)
		}
		return calendarDate(expr, nums[0], nums[1], nums[2], now.Location())
	}

	return nil, invalid(expr)
}

// at returns now's calendar date plus days, at the default time of day.
func at(now time.Time, days int) *time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day()+days, DefaultHour, DefaultMinute, 0, 0, now.Location())
	return &t
}

// maxDays bounds a day offset so the date arithmetic in at cannot overflow.
func maxDays(now time.Time) int {
	return (MaxYear - now.Year() + 1) * 366
}

// calendarDate builds the date at the default time of day, rejecting values
// that time.Date would normalize into a different date.
func calendarDate(expr string, year, month, day int, loc *time.Location) (*time.Time, error) {
	if year > MaxYear || month < 1 || month > 12 || day < 1 {
		return nil, invalid(expr)
	}
	t := time.Date(year, time.Month(month), day, DefaultHour, DefaultMinute, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil, invalid(expr)
	}
	return &t, nil
}

func atoiAll(groups []string) ([]int, error) {
	nums := make([]int, len(groups))
	for i, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

func invalid(expr string) error {
	return fmt.Errorf("%w: %q", ErrInvalidFormat, expr)
}
