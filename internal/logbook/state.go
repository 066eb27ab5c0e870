package logbook

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// PendingSet is one locally recorded set waiting to be synced to the server.
type PendingSet struct {
	ID          uuid.UUID
	Category    string
	Day         string // YYYY-MM-DD
	Reps        int
	RPE         *int
	IsMaxEffort bool
	CreatedAt   time.Time
}

// StateDB is the local SQLite queue for sets logged while offline. Synced
// rows are marked, not deleted, so the CLI can show recent history without a
// server round trip.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite queue at dir/logbook.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "logbook.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pending_sets (
		id            TEXT PRIMARY KEY,
		category      TEXT NOT NULL,
		day           TEXT NOT NULL,
		reps          INTEGER NOT NULL,
		rpe           INTEGER,
		is_max_effort INTEGER NOT NULL DEFAULT 0,
		created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		synced_at     TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating pending_sets table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// Enqueue stores a set locally. ID and CreatedAt are filled in when zero.
func (s *StateDB) Enqueue(set PendingSet) (PendingSet, error) {
	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO pending_sets (id, category, day, reps, rpe, is_max_effort, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		set.ID.String(), set.Category, set.Day, set.Reps, set.RPE,
		boolToInt(set.IsMaxEffort), set.CreatedAt,
	)
	if err != nil {
		return set, fmt.Errorf("enqueueing set: %w", err)
	}
	return set, nil
}

// Pending returns unsynced sets in insertion order.
func (s *StateDB) Pending() ([]PendingSet, error) {
	rows, err := s.db.Query(
		`SELECT id, category, day, reps, rpe, is_max_effort, created_at
		 FROM pending_sets WHERE synced_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying pending sets: %w", err)
	}
	defer rows.Close()

	var sets []PendingSet
	for rows.Next() {
		var (
			set    PendingSet
			id     string
			maxEff int
		)
		if err := rows.Scan(&id, &set.Category, &set.Day, &set.Reps, &set.RPE, &maxEff, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning pending set: %w", err)
		}
		set.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing set id %q: %w", id, err)
		}
		set.IsMaxEffort = maxEff != 0
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// MarkSynced records that the given sets reached the server.
func (s *StateDB) MarkSynced(ids []uuid.UUID) error {
	now := time.Now()
	for _, id := range ids {
		if _, err := s.db.Exec(
			`UPDATE pending_sets SET synced_at = ? WHERE id = ?`, now, id.String(),
		); err != nil {
			return fmt.Errorf("marking set %s synced: %w", id, err)
		}
	}
	return nil
}

// PurgeSynced deletes synced rows older than the cutoff.
func (s *StateDB) PurgeSynced(olderThan time.Time) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM pending_sets WHERE synced_at IS NOT NULL AND synced_at < ?`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("purging synced sets: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
