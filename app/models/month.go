package models

import (
	"fmt"
	"time"
)

// monthLayout is the wire format for month labels, e.g. "October 2025".
const monthLayout = "January 2006"

// Month is a normalized (year, month) pair. Payments carry free-form month
// labels on the wire; parsing them into a Month gives chronological ordering,
// which plain string comparison does not (e.g. "April 2026" sorts before
// "January 2025" lexically).
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a label like "October 2025" into a Month.
func ParseMonth(label string) (Month, error) {
	t, err := time.Parse(monthLayout, label)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month label %q: expected format %q", label, monthLayout)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// String formats the month back into its wire label.
func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(monthLayout)
}

// Before reports whether m is chronologically before o.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
