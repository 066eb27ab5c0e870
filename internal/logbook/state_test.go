package logbook

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *StateDB {
	t.Helper()
	db, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestEnqueueAndPending verifies enqueued sets come back unsynced in order.
func TestEnqueueAndPending(t *testing.T) {
	db := openTestDB(t)

	rpe := 7
	first, err := db.Enqueue(PendingSet{Category: "push", Day: "2026-03-01", Reps: 15, RPE: &rpe})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Enqueue(PendingSet{Category: "push", Day: "2026-03-01", Reps: 12}); err != nil {
		t.Fatal(err)
	}

	pending, err := db.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2", len(pending))
	}
	if pending[0].ID != first.ID {
		t.Errorf("pending[0].ID = %s, want %s", pending[0].ID, first.ID)
	}
	if pending[0].RPE == nil || *pending[0].RPE != 7 {
		t.Errorf("pending[0].RPE = %v, want 7", pending[0].RPE)
	}
	if pending[1].RPE != nil {
		t.Errorf("pending[1].RPE = %v, want nil", pending[1].RPE)
	}
}

// TestMarkSynced verifies synced sets drop out of the pending queue but
// survive in the database until purged.
func TestMarkSynced(t *testing.T) {
	db := openTestDB(t)

	set, err := db.Enqueue(PendingSet{Category: "legs", Day: "2026-03-02", Reps: 20})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.MarkSynced([]uuid.UUID{set.ID}); err != nil {
		t.Fatal(err)
	}

	pending, err := db.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Fatalf("got %d pending after sync, want 0", len(pending))
	}

	purged, err := db.PurgeSynced(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if purged != 1 {
		t.Errorf("purged %d rows, want 1", purged)
	}
}

// TestMaxEffortFlagRoundTrip verifies the flag survives storage.
func TestMaxEffortFlagRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.Enqueue(PendingSet{Category: "pull", Day: "2026-03-03", Reps: 11, IsMaxEffort: true}); err != nil {
		t.Fatal(err)
	}

	pending, err := db.Pending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || !pending[0].IsMaxEffort {
		t.Fatalf("got %+v, want one max-effort set", pending)
	}
}
