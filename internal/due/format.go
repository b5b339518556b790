package due

import (
	"fmt"
	"time"
)

// Kind classifies a due date relative to today.
type Kind int

const (
	Unscheduled Kind = iota
	PastDue
	Today
	Tomorrow
	Later
)

// Classify places cardDue into a Kind by comparing calendar dates in loc.
func Classify(cardDue *time.Time, now time.Time, loc *time.Location) Kind {
	if cardDue == nil {
		return Unscheduled
	}
	if loc == nil {
		loc = time.Local
	}

	d := civil(cardDue.In(loc))
	today := civil(now.In(loc))

	switch {
	case d.Before(today):
		return PastDue
	case d.Equal(today):
		return Today
	case d.Equal(today.AddDate(0, 0, 1)):
		return Tomorrow
	default:
		return Later
	}
}

// Format renders cardDue as a display label:
// "Unscheduled", "Past Due", "Today 5:00 pm", "Tomorrow 9:30 am" or
// "2024-03-01 5:00 pm".
func Format(cardDue *time.Time, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	switch Classify(cardDue, now, loc) {
	case Unscheduled:
		return "Unscheduled"
	case PastDue:
		return "Past Due"
	case Today:
		return "Today " + clock(cardDue.In(loc))
	case Tomorrow:
		return "Tomorrow " + clock(cardDue.In(loc))
	default:
		t := cardDue.In(loc)
		return t.Format("2006-01-02") + " " + clock(t)
	}
}

// clock renders the 12-hour time of t, e.g. "12:05 am".
func clock(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "am"
	if t.Hour() >= 12 {
		suffix = "pm"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), suffix)
}

// civil truncates t to midnight UTC of its calendar date so dates from
// different zones compare by day alone.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
