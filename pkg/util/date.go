package util

import "time"

// DayFloor truncates t to UTC midnight. Observation dates carry no
// intraday component.
func DayFloor(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from a to b, both floored to UTC midnight.
func DaysBetween(a, b time.Time) int {
	return int(DayFloor(b).Sub(DayFloor(a)) / (24 * time.Hour))
}

// FormatDay renders a date as YYYY-MM-DD, the grain used across the pipeline.
func FormatDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
