package scheduler

import (
	"testing"
	"time"
)

// TestMidnight verifies day truncation respects the target location.
func TestMidnight(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}

	// 23:30 UTC on March 1st is already March 2nd in Berlin.
	utc := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	got := Midnight(utc, berlin)
	want := time.Date(2025, 3, 2, 0, 0, 0, 0, berlin)
	if !got.Equal(want) {
		t.Errorf("Midnight = %v, want %v", got, want)
	}

	got = Midnight(utc, time.UTC)
	want = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight UTC = %v, want %v", got, want)
	}
}

// TestCronSpecs verifies the default config specs parse in robfig/cron's
// six-field format.
func TestCronSpecs(t *testing.T) {
	s := New(nil, time.UTC, nil)
	if err := s.cron.AddFunc("0 30 3 * * *", func() {}); err != nil {
		t.Errorf("daily spec rejected: %v", err)
	}
	if err := s.cron.AddFunc("0 0 4 * * SUN", func() {}); err != nil {
		t.Errorf("weekly spec rejected: %v", err)
	}
}
