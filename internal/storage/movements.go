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

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

const movementColumns = `id, user_id, category, variation_id, max_effort_reps, max_effort_date, created_at, updated_at`

func scanMovement(row pgx.Row) (models.MovementRow, error) {
	var m models.MovementRow
	err := row.Scan(&m.ID, &m.UserID, &m.Category, &m.VariationID,
		&m.MaxEffortReps, &m.MaxEffortDate, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// GetMovement returns the user's movement for one category.
func (db *DB) GetMovement(ctx context.Context, userID int, cat catalog.Category) (models.MovementRow, error) {
	m, err := scanMovement(db.Pool.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE user_id = $1 AND category = $2`,
		userID, cat))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MovementRow{}, ErrNotFound
	}
	if err != nil {
		return models.MovementRow{}, fmt.Errorf("querying movement: %w", err)
	}
	return m, nil
}

// ListMovements returns all of a user's movements ordered by category.
func (db *DB) ListMovements(ctx context.Context, userID int) ([]models.MovementRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE user_id = $1 ORDER BY category`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying movements: %w", err)
	}
	defer rows.Close()

	var result []models.MovementRow
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// ListAllMovements returns every user's movements, for scheduler iteration.
func (db *DB) ListAllMovements(ctx context.Context) ([]models.MovementRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT ` + movementColumns + ` FROM movements ORDER BY user_id, category`)
	if err != nil {
		return nil, fmt.Errorf("querying all movements: %w", err)
	}
	defer rows.Close()

	var result []models.MovementRow
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// UpsertMovementBenchmark creates the movement on first max-effort test, or
// refreshes its benchmark on later ones. Category and variation are left
// untouched on conflict; variation changes go through UpdateMovementVariation.
func (db *DB) UpsertMovementBenchmark(ctx context.Context, userID int, cat catalog.Category, variationID string, reps int, date time.Time) (models.MovementRow, error) {
	m, err := scanMovement(db.Pool.QueryRow(ctx, `
		INSERT INTO movements (user_id, category, variation_id, max_effort_reps, max_effort_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category) DO UPDATE
			SET max_effort_reps = $4, max_effort_date = $5, updated_at = NOW()
		RETURNING `+movementColumns,
		userID, cat, variationID, reps, date))
	if err != nil {
		return models.MovementRow{}, fmt.Errorf("upserting movement benchmark: %w", err)
	}
	return m, nil
}

// UpdateMovementVariation swaps the movement to a new exercise variation,
// used by auto-progression and manual changes.
func (db *DB) UpdateMovementVariation(ctx context.Context, userID int, cat catalog.Category, variationID string) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE movements SET variation_id = $3, updated_at = NOW()
		WHERE user_id = $1 AND category = $2`,
		userID, cat, variationID)
	if err != nil {
		return fmt.Errorf("updating movement variation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
