package utils

import "time"

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDayToMonth resolves a nominal day-of-month against the month's actual
// length, so day 31 in a 30-day month lands on the 30th and day 31 in February
// lands on the 28th (29th in leap years).
func ClampDayToMonth(year int, month time.Month, day int) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// DateOnly truncates a time to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the calendar-day distance from one date to another,
// ignoring the time of day. Both dates are normalized to UTC midnight so DST
// transitions cannot skew the count.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// SameYearMonth reports whether a date falls in the given year and month.
func SameYearMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}
