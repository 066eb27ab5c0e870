package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/progression"
)

// MovementRow is a user's configured exercise for one category: the current
// variation plus the most recent max-effort benchmark. Category is immutable
// once created.
type MovementRow struct {
	ID            uuid.UUID        `json:"id"`
	UserID        int              `json:"user_id"`
	Category      catalog.Category `json:"category"`
	VariationID   string           `json:"variation_id"`
	MaxEffortReps int              `json:"max_effort_reps"`
	MaxEffortDate time.Time        `json:"max_effort_date"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// LoggedSetRow is one persisted set. SetNumber is a 1-based contiguous
// ordinal within the user/category/day, enforced at insert time.
type LoggedSetRow struct {
	ID          uuid.UUID        `json:"id"`
	UserID      int              `json:"user_id"`
	Category    catalog.Category `json:"category"`
	Reps        int              `json:"reps"`
	RPE         *int             `json:"rpe,omitempty"`
	IsMaxEffort bool             `json:"is_max_effort"`
	SetNumber   int              `json:"set_number"`
	LoggedAt    time.Time        `json:"logged_at"`
}

// Set converts the row to the progression engine's value type.
func (r LoggedSetRow) Set() progression.LoggedSet {
	return progression.LoggedSet{
		Reps:        r.Reps,
		RPE:         r.RPE,
		IsMaxEffort: r.IsMaxEffort,
		SetNumber:   r.SetNumber,
		LoggedAt:    r.LoggedAt,
	}
}

// Sets converts a slice of rows for the engine.
func Sets(rows []LoggedSetRow) []progression.LoggedSet {
	out := make([]progression.LoggedSet, len(rows))
	for i, r := range rows {
		out[i] = r.Set()
	}
	return out
}

// DailyTargetRow is one entry in the append-only target ledger. The effective
// target for a date is the latest row with Date <= that date. Source records
// which policy wrote the row: "initial", "daily", or "weekly".
type DailyTargetRow struct {
	UserID    int              `json:"user_id"`
	Category  catalog.Category `json:"category"`
	Date      time.Time        `json:"date"`
	Target    int              `json:"target"`
	Source    string           `json:"source"`
	Reason    string           `json:"reason"`
	CreatedAt time.Time        `json:"created_at"`
}

// Target ledger sources.
const (
	TargetSourceInitial = "initial"
	TargetSourceDaily   = "daily"
	TargetSourceWeekly  = "weekly"
)

// ReadinessRow is one self-reported 1-5 readiness score per user and date.
type ReadinessRow struct {
	UserID int       `json:"user_id"`
	Date   time.Time `json:"date"`
	Score  int       `json:"score"`
}

// RecoveryAssessmentRow is a persisted weekly recovery breakdown together
// with the volume adjustment it produced.
type RecoveryAssessmentRow struct {
	ID                  uuid.UUID        `json:"id"`
	UserID              int              `json:"user_id"`
	Category            catalog.Category `json:"category"`
	WeekEnd             time.Time        `json:"week_end"`
	FirstSetPerformance int              `json:"first_set_performance"`
	RPEEfficiency       int              `json:"rpe_efficiency"`
	TargetAchievement   int              `json:"target_achievement"`
	Consistency         int              `json:"consistency"`
	Total               int              `json:"total"`
	Percentage          float64          `json:"percentage"`
	NewTarget           int              `json:"new_target"`
	CreatedAt           time.Time        `json:"created_at"`
}

// Breakdown extracts the engine's value type from a stored assessment.
func (r RecoveryAssessmentRow) Breakdown() progression.RecoveryBreakdown {
	return progression.RecoveryBreakdown{
		FirstSetPerformance: r.FirstSetPerformance,
		RPEEfficiency:       r.RPEEfficiency,
		TargetAchievement:   r.TargetAchievement,
		Consistency:         r.Consistency,
		Total:               r.Total,
	}
}
