package mcp

import (
	"context"
	"time"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
	"github.com/meltforce/repwave/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	EffectiveTarget(ctx context.Context, userID int, cat catalog.Category, date time.Time) (int, error)
	TargetHistory(ctx context.Context, userID int, cat catalog.Category, limit int) ([]models.DailyTargetRow, error)
	QuerySetsRange(ctx context.Context, userID int, cat catalog.Category, start, end time.Time) ([]models.LoggedSetRow, error)
	GetMovement(ctx context.Context, userID int, cat catalog.Category) (models.MovementRow, error)
	ListMovements(ctx context.Context, userID int) ([]models.MovementRow, error)
	QueryAssessments(ctx context.Context, userID int, cat catalog.Category, limit int) ([]models.RecoveryAssessmentRow, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
