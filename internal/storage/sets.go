package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
)

// InsertLoggedSets batch-inserts logged sets. Returns count inserted.
// Duplicate (user, category, day, set_number) rows are skipped, which makes
// offline logbook syncs idempotent.
func (db *DB) InsertLoggedSets(ctx context.Context, rows []models.LoggedSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO logged_sets (id, user_id, category, reps, rpe, is_max_effort, set_number, logged_at) VALUES `
	args := make([]any, 0, len(rows)*8)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, r.ID, r.UserID, r.Category, r.Reps, r.RPE,
			r.IsMaxEffort, r.SetNumber, r.LoggedAt)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting logged sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

const loggedSetColumns = `id, user_id, category, reps, rpe, is_max_effort, set_number, logged_at`

// QuerySetsRange retrieves one category's sets in [start, end), ordered by
// day then set number — the ordering the progression engine requires.
func (db *DB) QuerySetsRange(ctx context.Context, userID int, cat catalog.Category, start, end time.Time) ([]models.LoggedSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+loggedSetColumns+`
		 FROM logged_sets
		 WHERE user_id = $1 AND category = $2 AND logged_at >= $3 AND logged_at < $4
		 ORDER BY logged_at ASC, set_number ASC`,
		userID, cat, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying logged sets: %w", err)
	}
	defer rows.Close()

	var result []models.LoggedSetRow
	for rows.Next() {
		var r models.LoggedSetRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Category, &r.Reps, &r.RPE,
			&r.IsMaxEffort, &r.SetNumber, &r.LoggedAt); err != nil {
			return nil, fmt.Errorf("scanning logged set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// QuerySetsForDay retrieves one category's sets for a single calendar day.
// day must be midnight in the caller's location.
func (db *DB) QuerySetsForDay(ctx context.Context, userID int, cat catalog.Category, day time.Time) ([]models.LoggedSetRow, error) {
	return db.QuerySetsRange(ctx, userID, cat, day, day.AddDate(0, 0, 1))
}

// NextSetNumber returns the next free 1-based set number for a user/category/day.
// Set numbers within a day form a contiguous ascending sequence.
func (db *DB) NextSetNumber(ctx context.Context, userID int, cat catalog.Category, day time.Time) (int, error) {
	var maxSet int
	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(set_number), 0)
		 FROM logged_sets
		 WHERE user_id = $1 AND category = $2 AND logged_at >= $3 AND logged_at < $4`,
		userID, cat, day, day.AddDate(0, 0, 1)).Scan(&maxSet)
	if err != nil {
		return 0, fmt.Errorf("querying max set number: %w", err)
	}
	return maxSet + 1, nil
}
