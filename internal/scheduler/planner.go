package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
	"github.com/meltforce/repwave/internal/progression"
	"github.com/meltforce/repwave/internal/storage"
)

// Planner composes storage reads with the pure progression engine. The cron
// jobs and the HTTP preview endpoints share it so a dry run and the nightly
// rollover can never disagree.
type Planner struct {
	DB  *storage.DB
	Loc *time.Location
}

// DailyDecision is one category's target rollover for a day.
type DailyDecision struct {
	Category      catalog.Category           `json:"category"`
	Date          time.Time                  `json:"date"`
	CurrentTarget int                        `json:"current_target"`
	Adjustment    progression.DailyAdjustment `json:"adjustment"`
	NewTarget     int                        `json:"new_target"`
	CapRelaxed    bool                       `json:"cap_relaxed"`
}

// WeeklyDecision is one category's recovery assessment and the volume
// adjustment it implies.
type WeeklyDecision struct {
	Category      catalog.Category              `json:"category"`
	WeekEnd       time.Time                     `json:"week_end"`
	CurrentTarget int                           `json:"current_target"`
	MaxEffortReps int                           `json:"max_effort_reps"`
	Breakdown     progression.RecoveryBreakdown `json:"breakdown"`
	Adjustment    progression.VolumeAdjustment  `json:"adjustment"`
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DailyDecision computes today's target delta for one user/category from
// yesterday's sets, the prior day's cap-relaxation evidence, and today's
// readiness check-in. today must be midnight in the planner's location.
// Returns storage.ErrNotFound when no target ledger exists yet.
func (p *Planner) DailyDecision(ctx context.Context, userID int, cat catalog.Category, today time.Time) (*DailyDecision, error) {
	yesterday := today.AddDate(0, 0, -1)
	dayBefore := today.AddDate(0, 0, -2)

	target, err := p.DB.EffectiveTarget(ctx, userID, cat, yesterday)
	if err != nil {
		return nil, err
	}

	setsY, err := p.DB.QuerySetsForDay(ctx, userID, cat, yesterday)
	if err != nil {
		return nil, fmt.Errorf("loading yesterday's sets: %w", err)
	}
	setsD2, err := p.DB.QuerySetsForDay(ctx, userID, cat, dayBefore)
	if err != nil {
		return nil, fmt.Errorf("loading prior day's sets: %w", err)
	}
	readiness, err := p.DB.GetReadiness(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	capRelaxed := progression.IsCapRelaxed(models.Sets(setsY), models.Sets(setsD2))
	adj := progression.SuggestDailyTargetDelta(models.Sets(setsY), target, capRelaxed, cat, readiness)

	return &DailyDecision{
		Category:      cat,
		Date:          today,
		CurrentTarget: target,
		Adjustment:    adj,
		NewTarget:     target + adj.Delta,
		CapRelaxed:    capRelaxed,
	}, nil
}

// WeeklyDecision scores the 7-day window ending at weekEnd (inclusive) and
// maps the total to next week's target. weekEnd must be midnight in the
// planner's location.
func (p *Planner) WeeklyDecision(ctx context.Context, userID int, cat catalog.Category, weekEnd time.Time) (*WeeklyDecision, error) {
	target, err := p.DB.EffectiveTarget(ctx, userID, cat, weekEnd)
	if err != nil {
		return nil, err
	}
	mov, err := p.DB.GetMovement(ctx, userID, cat)
	if err != nil {
		return nil, err
	}

	start := weekEnd.AddDate(0, 0, -6)
	end := weekEnd.AddDate(0, 0, 1)
	sets, err := p.DB.QuerySetsRange(ctx, userID, cat, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading week's sets: %w", err)
	}

	breakdown := progression.ScoreWeek(models.Sets(sets), target, mov.MaxEffortReps)
	adj := progression.SuggestVolumeAdjustment(breakdown.Total, target)

	return &WeeklyDecision{
		Category:      cat,
		WeekEnd:       weekEnd,
		CurrentTarget: target,
		MaxEffortReps: mov.MaxEffortReps,
		Breakdown:     breakdown,
		Adjustment:    adj,
	}, nil
}
