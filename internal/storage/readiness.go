package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// UpsertReadiness stores a 1-5 readiness score for a user and date. A repeat
// check-in for the same day overwrites the earlier one.
func (db *DB) UpsertReadiness(ctx context.Context, userID int, date time.Time, score int) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO readiness (user_id, date, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, date) DO UPDATE SET score = $3`,
		userID, date, score)
	if err != nil {
		return fmt.Errorf("upserting readiness: %w", err)
	}
	return nil
}

// GetReadiness returns the score for a date, or nil if the athlete skipped
// the check-in. The progression engine treats nil as neutral.
func (db *DB) GetReadiness(ctx context.Context, userID int, date time.Time) (*int, error) {
	var score int
	err := db.Pool.QueryRow(ctx,
		`SELECT score FROM readiness WHERE user_id = $1 AND date = $2`,
		userID, date).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying readiness: %w", err)
	}
	return &score, nil
}
