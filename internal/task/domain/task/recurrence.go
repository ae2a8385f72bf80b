package task

import (
	"fmt"
	"strings"
	"time"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// NewRecurrence parses a recurrence pattern. An empty string means the task
// does not recur.
func NewRecurrence(r string) (Recurrence, error) {
	switch v := Recurrence(strings.ToLower(strings.TrimSpace(r))); v {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, r)
	}
}

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

func (r Recurrence) IsRecurring() bool {
	return r != RecurrenceNone
}

// Next returns the occurrence following date. Monthly recurrences clamp the
// day to 28 so every month has it; yearly recurrences move Feb 29 to Feb 28.
func (r Recurrence) Next(date time.Time) (time.Time, bool) {
	d := dateOf(date)
	year, month, day := d.Date()

	switch r {
	case RecurrenceDaily:
		return d.AddDate(0, 0, 1), true
	case RecurrenceWeekly:
		return d.AddDate(0, 0, 7), true
	case RecurrenceMonthly:
		if month == time.December {
			year, month = year+1, time.January
		} else {
			month++
		}

		return time.Date(year, month, min(day, 28), 0, 0, 0, 0, time.UTC), true
	case RecurrenceYearly:
		if month == time.February && day == 29 {
			day = 28
		}

		return time.Date(year+1, month, day, 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}

// dateOf returns midnight UTC of the calendar date t shows in its own
// location, so a local due date keeps its day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// utcDate returns midnight UTC of t's calendar date in UTC.
func utcDate(t time.Time) time.Time {
	return dateOf(t.UTC())
}
