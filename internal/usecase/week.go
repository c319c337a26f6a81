package usecase

import "time"

// Week numbering is ISO-8601 everywhere: Monday-start weeks, week 1 holds
// January 4th. Both the weekly report path and the deal-close path key
// into performance_metrics through these helpers, so the same instant can
// never land in two different rows.

// WeekOf returns the ISO week number and ISO year of t.
func WeekOf(t time.Time) (week, year int) {
	isoYear, isoWeek := t.UTC().ISOWeek()
	return isoWeek, isoYear
}

// StartOfWeek returns the Monday of t's week at 00:00 UTC.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStartDate returns the Monday of the given ISO week.
func WeekStartDate(year, week int) time.Time {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return StartOfWeek(jan4).AddDate(0, 0, (week-1)*7)
}
