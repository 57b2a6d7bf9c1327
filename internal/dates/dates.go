// Package dates implements civil-date arithmetic in the user's local frame.
// A date is a calendar day, not an instant: dates are stored and compared as
// YYYY-MM-DD strings, where lexicographic order is date order. There is no
// timezone conversion anywhere; parsing "2025-12-30" yields local midnight,
// never a UTC day-shift.
package dates

import (
	"fmt"
	"time"

	"github.com/fireminder/fireminder/internal/models"
)

// Layout is the canonical civil date format.
const Layout = "2006-01-02"

// Parse converts a YYYY-MM-DD string into local midnight of that day.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Format renders the calendar day of t, zero-padded.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddInterval advances t by amount units. Days, weeks, months and years use
// calendar field arithmetic; hours mutate the time-of-day and may roll into
// the next calendar day.
func AddInterval(t time.Time, amount int, unit models.IntervalUnit) time.Time {
	switch unit {
	case models.UnitHours:
		return t.Add(time.Duration(amount) * time.Hour)
	case models.UnitWeeks:
		return t.AddDate(0, 0, amount*7)
	case models.UnitMonths:
		return t.AddDate(0, amount, 0)
	case models.UnitYears:
		return t.AddDate(amount, 0, 0)
	default: // days
		return t.AddDate(0, 0, amount)
	}
}

// DaysBetween returns the signed whole-day difference b - a between two civil
// dates. The division floors rather than rounds so partial days of overdue
// time never count as a full day.
func DaysBetween(a, b string) (int, error) {
	da, err := Parse(a)
	if err != nil {
		return 0, err
	}
	db, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return floorDays(db.Sub(da)), nil
}

func floorDays(d time.Duration) int {
	const day = 24 * time.Hour
	days := d / day
	if d%day < 0 {
		days--
	}
	return int(days)
}
