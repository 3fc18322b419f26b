package timecalc

import (
	"fmt"
	"time"
)

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatHoursMinutes formats seconds as "2h 0m" or "30m". Seconds are dropped,
// so anything under a minute renders as "0m".
func FormatHoursMinutes(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatElapsed formats seconds with full precision, e.g. "1h 1m 1s".
func FormatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS.
func FormatDurationHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// WeekRange returns the first day (00:00:00) and last day (23:59:59) of the
// week containing t, where weeks begin on start.
func WeekRange(t time.Time, start time.Weekday) (time.Time, time.Time) {
	first := WeekStart(t, start)
	last := first.AddDate(0, 0, 6)
	return first, EndOfDay(last)
}

// WeekStart returns 00:00:00 of the first day of the week containing t.
func WeekStart(t time.Time, start time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(start) + 7) % 7
	return StartOfDay(t.AddDate(0, 0, -back))
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AtClock returns day's date at the wall clock "HH:MM".
func AtClock(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, day.Location()), nil
}

// ParseWeekday accepts "sunday" or "monday" (case-sensitive config values).
func ParseWeekday(s string) (time.Weekday, error) {
	switch s {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("unsupported week start %q (want sunday or monday)", s)
}
