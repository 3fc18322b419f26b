package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0m"},
		{59, "0m"},
		{1800, "30m"},
		{3600, "1h 0m"},
		{7200, "2h 0m"},
		{5430, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatHoursMinutes(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatHoursMinutes(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{30, "30s"},
		{59, "59s"},
		{60, "1m 0s"},
		{90, "1m 30s"},
		{3600, "1h 0m 0s"},
		{3661, "1h 1m 1s"},
		{7322, "2h 2m 2s"},
	}
	for _, tt := range tests {
		got := timecalc.FormatElapsed(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		{36000, "10:00:00"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday.
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     time.Weekday
		wantFirst time.Time
		wantLast  time.Time
	}{
		{
			name:      "monday",
			start:     time.Monday,
			wantFirst: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
			wantLast:  time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "sunday",
			start:     time.Sunday,
			wantFirst: time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC),
			wantLast:  time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := timecalc.WeekRange(fri, tt.start)
			if !first.Equal(tt.wantFirst) {
				t.Errorf("first = %v, want %v", first, tt.wantFirst)
			}
			if !last.Equal(tt.wantLast) {
				t.Errorf("last = %v, want %v", last, tt.wantLast)
			}
		})
	}
}

func TestWeekStartOnStartDay(t *testing.T) {
	sun := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	got := timecalc.WeekStart(sun, time.Sunday)
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(sunday, Sunday) = %v, want %v", got, want)
	}

	got = timecalc.WeekStart(sun, time.Monday)
	want = time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WeekStart(sunday, Monday) = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestAtClock(t *testing.T) {
	day := time.Date(2026, 2, 27, 23, 10, 5, 0, time.UTC)
	got, err := timecalc.AtClock(day, "09:30")
	if err != nil {
		t.Fatalf("AtClock: %v", err)
	}
	want := time.Date(2026, 2, 27, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AtClock = %v, want %v", got, want)
	}

	if _, err := timecalc.AtClock(day, "9.30"); err == nil {
		t.Error("expected error for malformed clock")
	}
}

func TestParseWeekday(t *testing.T) {
	if d, err := timecalc.ParseWeekday("monday"); err != nil || d != time.Monday {
		t.Errorf("ParseWeekday(monday) = %v, %v", d, err)
	}
	if d, err := timecalc.ParseWeekday("sunday"); err != nil || d != time.Sunday {
		t.Errorf("ParseWeekday(sunday) = %v, %v", d, err)
	}
	if _, err := timecalc.ParseWeekday("friday"); err == nil {
		t.Error("expected error for friday")
	}
}
