package domain

import (
	"testing"
	"time"
)

func TestCountdownText(t *testing.T) {
	t.Parallel()

	now := time.Date(2023, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want string
	}{
		{"seconds", now.Add(4 * time.Second), "less than a minute"},
		{"now", now, "less than a minute"},
		{"one minute", now.Add(70 * time.Second), "1 minute"},
		{"minutes", now.Add(4 * time.Minute), "4 minutes"},
		{"minutes rounded", now.Add(44*time.Minute + 20*time.Second), "44 minutes"},
		{"about an hour", now.Add(50 * time.Minute), "about 1 hour"},
		{"hours", now.Add(7 * time.Hour), "about 7 hours"},
		{"one day", now.Add(30 * time.Hour), "1 day"},
		{"two days", now.Add(48 * time.Hour), "2 days"},
		{"days", now.Add(12 * 24 * time.Hour), "12 days"},
		{"about a month", now.Add(32 * 24 * time.Hour), "about 1 month"},
		{"about two months", now.Add(55 * 24 * time.Hour), "about 2 months"},
		{"months", now.AddDate(0, 5, 0), "5 months"},
		{"about a year", now.AddDate(1, 1, 0), "about 1 year"},
		{"over a year", now.AddDate(1, 4, 0), "over 1 year"},
		{"almost two years", now.AddDate(1, 10, 0), "almost 2 years"},
		{"past dates", now.Add(-48 * time.Hour), "2 days"},
	}

	for _, tt := range tests {
		if got := CountdownText(tt.end, now); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	t.Parallel()

	a := time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)

	if got := monthsBetween(a, time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)); got != 2 {
		t.Fatalf("expected 2 months, got %d", got)
	}

	if got := monthsBetween(a, time.Date(2023, 3, 15, 11, 59, 0, 0, time.UTC)); got != 1 {
		t.Fatalf("expected 1 month before anniversary, got %d", got)
	}
}
