// Package clock yields civil dates in the host's local calendar.
package clock

import (
	"fmt"
	"time"
)

// Layout is the civil date format used everywhere: YYYY-MM-DD.
const Layout = "2006-01-02"

// Clock reports today's civil date.
type Clock interface {
	Today() string
}

// System reads the wall clock in the host's local zone.
type System struct{}

// Today returns the current local date.
func (System) Today() string {
	return Format(time.Now())
}

// Fixed always reports the same date. Useful in tests and for replays.
type Fixed string

// Today returns the fixed date.
func (f Fixed) Today() string {
	return string(f)
}

// Format renders t's local calendar day.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a YYYY-MM-DD date as midnight in the local zone.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// AddDays returns the civil date n days after date.
// Calendar arithmetic (AddDate) keeps DST transitions from shifting the day.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of civil days from a to b.
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	ua := time.Date(ta.Year(), ta.Month(), ta.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(tb.Year(), tb.Month(), tb.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24), nil
}
