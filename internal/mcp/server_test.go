package mcp

import (
	"context"
	"testing"
	"time"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestParseDay verifies date parsing and the today default.
func TestParseDay(t *testing.T) {
	h := &handlers{loc: time.UTC}

	day, err := h.parseDay("2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Year() != 2026 || day.Month() != 3 || day.Day() != 15 {
		t.Errorf("day = %v, want 2026-03-15", day)
	}
	if day.Hour() != 0 || day.Location() != time.UTC {
		t.Errorf("day = %v, want midnight UTC", day)
	}

	today, err := h.parseDay("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("default day = %v, want midnight", today)
	}

	if _, err := h.parseDay("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}
