package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
)

// AppendDailyTarget writes a new entry to the append-only target ledger.
// A second write for the same date replaces that date's entry (the latest
// decision for a day wins); earlier dates are never touched.
func (db *DB) AppendDailyTarget(ctx context.Context, row models.DailyTargetRow) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO daily_targets (user_id, category, date, target, source, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, category, date) DO UPDATE
			SET target = $4, source = $5, reason = $6, created_at = NOW()`,
		row.UserID, row.Category, row.Date, row.Target, row.Source, row.Reason)
	if err != nil {
		return fmt.Errorf("appending daily target: %w", err)
	}
	return nil
}

// EffectiveTarget returns the target in force on a date: the latest ledger
// entry with date <= the query date.
func (db *DB) EffectiveTarget(ctx context.Context, userID int, cat catalog.Category, date time.Time) (int, error) {
	var target int
	err := db.Pool.QueryRow(ctx, `
		SELECT target FROM daily_targets
		WHERE user_id = $1 AND category = $2 AND date <= $3
		ORDER BY date DESC LIMIT 1`,
		userID, cat, date).Scan(&target)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("querying effective target: %w", err)
	}
	return target, nil
}

// TargetHistory returns the most recent ledger entries, newest first.
func (db *DB) TargetHistory(ctx context.Context, userID int, cat catalog.Category, limit int) ([]models.DailyTargetRow, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT user_id, category, date, target, source, reason, created_at
		FROM daily_targets
		WHERE user_id = $1 AND category = $2
		ORDER BY date DESC LIMIT $3`,
		userID, cat, limit)
	if err != nil {
		return nil, fmt.Errorf("querying target history: %w", err)
	}
	defer rows.Close()

	var result []models.DailyTargetRow
	for rows.Next() {
		var r models.DailyTargetRow
		if err := rows.Scan(&r.UserID, &r.Category, &r.Date, &r.Target,
			&r.Source, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning target row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
