package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
)

// InsertAssessment persists a weekly recovery assessment. One row per
// user/category/week-end; a re-run replaces the earlier result.
func (db *DB) InsertAssessment(ctx context.Context, row models.RecoveryAssessmentRow) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO recovery_assessments
			(id, user_id, category, week_end, first_set_performance, rpe_efficiency,
			 target_achievement, consistency, total, percentage, new_target)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, category, week_end) DO UPDATE
			SET first_set_performance = $5, rpe_efficiency = $6, target_achievement = $7,
			    consistency = $8, total = $9, percentage = $10, new_target = $11,
			    created_at = NOW()`,
		row.ID, row.UserID, row.Category, row.WeekEnd,
		row.FirstSetPerformance, row.RPEEfficiency, row.TargetAchievement,
		row.Consistency, row.Total, row.Percentage, row.NewTarget)
	if err != nil {
		return fmt.Errorf("inserting recovery assessment: %w", err)
	}
	return nil
}

// QueryAssessments returns the most recent assessments for a category,
// newest first.
func (db *DB) QueryAssessments(ctx context.Context, userID int, cat catalog.Category, limit int) ([]models.RecoveryAssessmentRow, error) {
	if limit <= 0 {
		limit = 12
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, user_id, category, week_end, first_set_performance, rpe_efficiency,
		       target_achievement, consistency, total, percentage, new_target, created_at
		FROM recovery_assessments
		WHERE user_id = $1 AND category = $2
		ORDER BY week_end DESC LIMIT $3`,
		userID, cat, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recovery assessments: %w", err)
	}
	defer rows.Close()

	var result []models.RecoveryAssessmentRow
	for rows.Next() {
		var r models.RecoveryAssessmentRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.Category, &r.WeekEnd,
			&r.FirstSetPerformance, &r.RPEEfficiency, &r.TargetAchievement,
			&r.Consistency, &r.Total, &r.Percentage, &r.NewTarget, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning recovery assessment: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
