package storage

import (
	"context"
	"fmt"
	"time"
)

// CategoryStat holds summary stats for one movement category.
type CategoryStat struct {
	Category     string `json:"category"`
	TotalSets    int64  `json:"total_sets"`
	TotalReps    int64  `json:"total_reps"`
	TrainingDays int64  `json:"training_days"`
}

// DataStats holds aggregate statistics about a user's stored data.
type DataStats struct {
	TotalSets        int64          `json:"total_sets"`
	TotalMovements   int64          `json:"total_movements"`
	TargetEntries    int64          `json:"target_entries"`
	Assessments      int64          `json:"assessments"`
	EarliestSet      *time.Time     `json:"earliest_set"`
	LatestSet        *time.Time     `json:"latest_set"`
	SetsByCategory   []CategoryStat `json:"sets_by_category"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(logged_at), MAX(logged_at) FROM logged_sets WHERE user_id = $1`,
		userID).Scan(&stats.TotalSets, &stats.EarliestSet, &stats.LatestSet)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements WHERE user_id = $1`, userID,
	).Scan(&stats.TotalMovements)
	if err != nil {
		return nil, fmt.Errorf("counting movements: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_targets WHERE user_id = $1`, userID,
	).Scan(&stats.TargetEntries)
	if err != nil {
		return nil, fmt.Errorf("counting target entries: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM recovery_assessments WHERE user_id = $1`, userID,
	).Scan(&stats.Assessments)
	if err != nil {
		return nil, fmt.Errorf("counting assessments: %w", err)
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT category,
		       COUNT(*)::bigint,
		       COALESCE(SUM(reps), 0)::bigint,
		       COUNT(DISTINCT logged_at::date)::bigint
		FROM logged_sets
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying category stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c CategoryStat
		if err := rows.Scan(&c.Category, &c.TotalSets, &c.TotalReps, &c.TrainingDays); err != nil {
			return nil, fmt.Errorf("scanning category stat: %w", err)
		}
		stats.SetsByCategory = append(stats.SetsByCategory, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
