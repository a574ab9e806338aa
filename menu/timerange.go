// Package menu holds the menu aggregation core: time-window evaluation,
// visibility resolution, nested document assembly, the field-safe sync merge
// and the consistency diagnostics. Everything in this package is pure; the
// controllers own all store access.
package menu

import (
	"fmt"
	"time"
)

// ParseClock parses a zero-padded "HH:MM" time-of-day string into minutes
// since midnight. Category writes validate their time windows through this
// before anything is stored.
func ParseClock(s string) (int, error) {
	// time.Parse("15:04", ...) tolerates single-digit hours; the stored
	// format is strictly zero-padded, so pin the length first.
	if len(s) != len("15:04") {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsWithinRange reports whether now falls inside the [start, end) time-of-day
// window. A window whose start is after its end crosses midnight: 22:00-02:00
// covers 23:30 and 01:00 but not 10:00. Malformed strings are a caller error;
// they resolve to within-range so a bad stored window never hides a category.
func IsWithinRange(start, end string, now time.Time) bool {
	s, err := ParseClock(start)
	if err != nil {
		return true
	}
	e, err := ParseClock(end)
	if err != nil {
		return true
	}

	n := now.Hour()*60 + now.Minute()
	if s <= e {
		return n >= s && n < e
	}
	return n >= s || n < e
}
