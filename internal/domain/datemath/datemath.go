// Package datemath provides the calendar arithmetic the membership
// lifecycle rules are built on. All functions operate on calendar days:
// inputs are truncated to midnight UTC so that a membership expiring
// "today" is treated the same at 07:00 and 23:00.
package datemath

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// Truncate normalizes a timestamp to midnight UTC of its calendar day.
// PRE: t is any timestamp
// POST: Returned value has zero clock time in UTC
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
// PRE: s is non-empty
// POST: Returns midnight UTC of the given day, or ErrInvalidDate
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return Truncate(t).Format(DateLayout)
}

// AddMonths advances a date by the given number of calendar months.
// Overflow normalizes forward (Jan 31 + 1 month lands in early March),
// matching how renewal end dates have always been computed.
// PRE: t is a valid date
// POST: Returned date is normalized to midnight UTC
func AddMonths(t time.Time, months int) time.Time {
	return Truncate(t).AddDate(0, months, 0)
}

// DaysBetween returns the number of calendar days from a to b.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// DaysUntil returns the number of whole calendar days from now until end.
// Zero means end is today; negative means end has passed.
func DaysUntil(end, now time.Time) int {
	return DaysBetween(now, end)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}
