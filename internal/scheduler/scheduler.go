// Package scheduler runs the progression jobs: the nightly target rollover
// and the Sunday volume adjustment.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"

	"github.com/meltforce/repwave/internal/models"
	"github.com/meltforce/repwave/internal/storage"
)

// Scheduler drives the planner on a cron cadence across all users.
type Scheduler struct {
	planner *Planner
	cron    *cron.Cron
	log     *slog.Logger
}

// New creates a Scheduler. Call Start to register jobs and begin running.
func New(db *storage.DB, loc *time.Location, log *slog.Logger) *Scheduler {
	return &Scheduler{
		planner: &Planner{DB: db, Loc: loc},
		cron:    cron.New(),
		log:     log,
	}
}

// Planner exposes the decision composition for HTTP preview endpoints.
func (s *Scheduler) Planner() *Planner {
	return s.planner
}

// Start registers the rollover and weekly jobs with the given cron specs and
// starts the cron loop.
func (s *Scheduler) Start(dailySpec, weeklySpec string) error {
	err := s.cron.AddFunc(dailySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.RunDailyRollover(ctx, time.Now()); err != nil {
			s.log.Error("daily rollover failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("registering daily rollover job: %w", err)
	}

	err = s.cron.AddFunc(weeklySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.RunWeeklyAdjustment(ctx, time.Now()); err != nil {
			s.log.Error("weekly adjustment failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("registering weekly adjustment job: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", "daily", dailySpec, "weekly", weeklySpec)
	return nil
}

// Stop halts the cron loop. Running jobs finish on their own contexts.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunDailyRollover computes and applies today's target delta for every
// user/category with an active target ledger. Held targets write no ledger
// row; the previous entry stays in force.
func (s *Scheduler) RunDailyRollover(ctx context.Context, now time.Time) error {
	today := Midnight(now, s.planner.Loc)

	movements, err := s.planner.DB.ListAllMovements(ctx)
	if err != nil {
		return fmt.Errorf("listing movements: %w", err)
	}

	for _, mov := range movements {
		dec, err := s.planner.DailyDecision(ctx, mov.UserID, mov.Category, today)
		if errors.Is(err, storage.ErrNotFound) {
			continue // no benchmark yet, nothing to roll over
		}
		if err != nil {
			s.log.Error("daily decision failed",
				"user", mov.UserID, "category", mov.Category, "error", err)
			continue
		}

		if dec.Adjustment.Delta == 0 {
			s.log.Debug("target held",
				"user", mov.UserID, "category", mov.Category, "reason", dec.Adjustment.Reason)
			continue
		}

		row := models.DailyTargetRow{
			UserID:   mov.UserID,
			Category: mov.Category,
			Date:     today,
			Target:   dec.NewTarget,
			Source:   models.TargetSourceDaily,
			Reason:   dec.Adjustment.Reason,
		}
		if err := s.planner.DB.AppendDailyTarget(ctx, row); err != nil {
			s.log.Error("appending daily target failed",
				"user", mov.UserID, "category", mov.Category, "error", err)
			continue
		}
		s.log.Info("daily target adjusted",
			"user", mov.UserID, "category", mov.Category,
			"delta", dec.Adjustment.Delta, "target", dec.NewTarget,
			"reason", dec.Adjustment.Reason)
	}
	return nil
}

// RunWeeklyAdjustment scores the past week per user/category, persists the
// assessment, and applies the volume adjustment as tomorrow's target.
func (s *Scheduler) RunWeeklyAdjustment(ctx context.Context, now time.Time) error {
	weekEnd := Midnight(now, s.planner.Loc)

	movements, err := s.planner.DB.ListAllMovements(ctx)
	if err != nil {
		return fmt.Errorf("listing movements: %w", err)
	}

	for _, mov := range movements {
		dec, err := s.planner.WeeklyDecision(ctx, mov.UserID, mov.Category, weekEnd)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			s.log.Error("weekly decision failed",
				"user", mov.UserID, "category", mov.Category, "error", err)
			continue
		}

		assessment := models.RecoveryAssessmentRow{
			ID:                  uuid.New(),
			UserID:              mov.UserID,
			Category:            mov.Category,
			WeekEnd:             weekEnd,
			FirstSetPerformance: dec.Breakdown.FirstSetPerformance,
			RPEEfficiency:       dec.Breakdown.RPEEfficiency,
			TargetAchievement:   dec.Breakdown.TargetAchievement,
			Consistency:         dec.Breakdown.Consistency,
			Total:               dec.Breakdown.Total,
			Percentage:          dec.Adjustment.Percentage,
			NewTarget:           dec.Adjustment.NewTarget,
		}
		if err := s.planner.DB.InsertAssessment(ctx, assessment); err != nil {
			s.log.Error("persisting assessment failed",
				"user", mov.UserID, "category", mov.Category, "error", err)
			continue
		}

		if dec.Adjustment.NewTarget != dec.CurrentTarget {
			row := models.DailyTargetRow{
				UserID:   mov.UserID,
				Category: mov.Category,
				Date:     weekEnd.AddDate(0, 0, 1),
				Target:   dec.Adjustment.NewTarget,
				Source:   models.TargetSourceWeekly,
				Reason:   fmt.Sprintf("recovery score %d", dec.Breakdown.Total),
			}
			if err := s.planner.DB.AppendDailyTarget(ctx, row); err != nil {
				s.log.Error("appending weekly target failed",
					"user", mov.UserID, "category", mov.Category, "error", err)
				continue
			}
		}
		s.log.Info("weekly adjustment applied",
			"user", mov.UserID, "category", mov.Category,
			"score", dec.Breakdown.Total, "target", dec.Adjustment.NewTarget)
	}
	return nil
}
