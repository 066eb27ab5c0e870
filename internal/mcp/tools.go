package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
	"github.com/meltforce/repwave/internal/progression"
)

// parseDay parses a YYYY-MM-DD string as midnight in the server location,
// defaulting to today when empty.
func (h *handlers) parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().In(h.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc), nil
	}
	return time.ParseInLocation("2006-01-02", s, h.loc)
}

func (h *handlers) parseCategory(req mcp.CallToolRequest) (catalog.Category, *mcp.CallToolResult) {
	v, err := req.RequireString("category")
	if err != nil {
		return "", mcp.NewToolResultError("category parameter is required")
	}
	cat, err := catalog.ParseCategory(v)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return cat, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// --- Tool definitions ---

var toolGetDailyTarget = mcp.NewTool("get_daily_target",
	mcp.WithDescription("Get the daily rep target in force for a category on a date, plus recent target history with the policy reasons behind each change."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Movement category"), mcp.Enum("push", "pull", "legs")),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetSets = mcp.NewTool("get_sets",
	mcp.WithDescription("Query logged sets for a category. Returns reps, RPE, max-effort flag, and set ordering per training day."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Movement category"), mcp.Enum("push", "pull", "legs")),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 7 days before end.")),
	mcp.WithString("end", mcp.Description("End date, inclusive (YYYY-MM-DD). Defaults to today.")),
)

var toolGetRecoveryScore = mcp.NewTool("get_recovery_score",
	mcp.WithDescription("Compute the weekly recovery score (0-100) for the 7-day window ending at a date: first-set performance, RPE efficiency, target achievement, and consistency sub-scores."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Movement category"), mcp.Enum("push", "pull", "legs")),
	mcp.WithString("end", mcp.Description("Window end date (YYYY-MM-DD). Defaults to today.")),
)

var toolSuggestVolumeAdjustment = mcp.NewTool("suggest_volume_adjustment",
	mcp.WithDescription("Map the current weekly recovery score to a percentage volume change and the resulting new daily target."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Movement category"), mcp.Enum("push", "pull", "legs")),
	mcp.WithString("end", mcp.Description("Window end date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetMovements = mcp.NewTool("get_movements",
	mcp.WithDescription("List the user's configured movements: current exercise variation and most recent max-effort benchmark per category."),
)

var toolGetCatalog = mcp.NewTool("get_catalog",
	mcp.WithDescription("List the exercise variation ladder for a category, ordered by difficulty."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Movement category"), mcp.Enum("push", "pull", "legs")),
)

var toolGetRecoveryHistory = mcp.NewTool("get_recovery_history",
	mcp.WithDescription("List persisted weekly recovery assessments for a category, newest first."),
	mcp.WithString("category", mcp.Required(), mcp.Description("Movement category"), mcp.Enum("push", "pull", "legs")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Aggregate statistics: total sets, reps and training days per category, target ledger size, assessment count."),
)

// --- Tool handlers ---

func (h *handlers) getDailyTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	cat, errRes := h.parseCategory(req)
	if errRes != nil {
		return errRes, nil
	}
	date, err := h.parseDay(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date: " + err.Error()), nil
	}

	target, err := h.ds.EffectiveTarget(ctx, uid, cat, date)
	if err != nil {
		return mcp.NewToolResultError("no target for " + string(cat) + ": record a max-effort test first"), nil
	}
	history, err := h.ds.TargetHistory(ctx, uid, cat, 14)
	if err != nil {
		return nil, err
	}

	return jsonResult(map[string]any{
		"category": cat,
		"date":     date.Format("2006-01-02"),
		"target":   target,
		"history":  history,
	})
}

func (h *handlers) getSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	cat, errRes := h.parseCategory(req)
	if errRes != nil {
		return errRes, nil
	}
	end, err := h.parseDay(req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
	}
	start := end.AddDate(0, 0, -7)
	if v := req.GetString("start", ""); v != "" {
		start, err = h.parseDay(v)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
	}

	sets, err := h.ds.QuerySetsRange(ctx, uid, cat, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return jsonResult(sets)
}

// weekReview loads everything the scorer needs for the window ending at end.
func (h *handlers) weekReview(ctx context.Context, uid int, cat catalog.Category, end time.Time) (progression.RecoveryBreakdown, int, error) {
	target, err := h.ds.EffectiveTarget(ctx, uid, cat, end)
	if err != nil {
		return progression.RecoveryBreakdown{}, 0, err
	}
	mov, err := h.ds.GetMovement(ctx, uid, cat)
	if err != nil {
		return progression.RecoveryBreakdown{}, 0, err
	}
	sets, err := h.ds.QuerySetsRange(ctx, uid, cat, end.AddDate(0, 0, -6), end.AddDate(0, 0, 1))
	if err != nil {
		return progression.RecoveryBreakdown{}, 0, err
	}
	return progression.ScoreWeek(models.Sets(sets), target, mov.MaxEffortReps), target, nil
}

func (h *handlers) getRecoveryScore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	cat, errRes := h.parseCategory(req)
	if errRes != nil {
		return errRes, nil
	}
	end, err := h.parseDay(req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
	}

	breakdown, target, err := h.weekReview(ctx, uid, cat, end)
	if err != nil {
		return mcp.NewToolResultError("scoring week: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"category":     cat,
		"week_end":     end.Format("2006-01-02"),
		"daily_target": target,
		"breakdown":    breakdown,
	})
}

func (h *handlers) suggestVolumeAdjustment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	cat, errRes := h.parseCategory(req)
	if errRes != nil {
		return errRes, nil
	}
	end, err := h.parseDay(req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
	}

	breakdown, target, err := h.weekReview(ctx, uid, cat, end)
	if err != nil {
		return mcp.NewToolResultError("scoring week: " + err.Error()), nil
	}
	adj := progression.SuggestVolumeAdjustment(breakdown.Total, target)
	return jsonResult(map[string]any{
		"category":       cat,
		"week_end":       end.Format("2006-01-02"),
		"recovery_total": breakdown.Total,
		"current_target": target,
		"adjustment":     adj,
	})
}

func (h *handlers) getMovements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	movements, err := h.ds.ListMovements(ctx, uid)
	if err != nil {
		return nil, err
	}
	return jsonResult(movements)
}

func (h *handlers) getCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat, errRes := h.parseCategory(req)
	if errRes != nil {
		return errRes, nil
	}
	return jsonResult(h.cat.List(cat))
}

func (h *handlers) getRecoveryHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	cat, errRes := h.parseCategory(req)
	if errRes != nil {
		return errRes, nil
	}
	rows, err := h.ds.QueryAssessments(ctx, uid, cat, 12)
	if err != nil {
		return nil, err
	}
	return jsonResult(rows)
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	stats, err := h.ds.GetDataStats(ctx, uid)
	if err != nil {
		return nil, err
	}
	return jsonResult(stats)
}
