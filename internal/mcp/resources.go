package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/repwave/internal/catalog"
)

var resTodaySummary = mcp.NewResource(
	"repwave://summary/today",
	"Today's training summary",
	mcp.WithResourceDescription("Effective daily targets, today's logged sets, and the current movements for every category."),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) todaySummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	today, err := h.parseDay("")
	if err != nil {
		return nil, err
	}
	tomorrow := today.AddDate(0, 0, 1)

	movements, err := h.ds.ListMovements(ctx, uid)
	if err != nil {
		return nil, err
	}

	targets := make(map[catalog.Category]int)
	setsToday := make(map[catalog.Category]any)
	for _, cat := range catalog.Categories {
		if target, err := h.ds.EffectiveTarget(ctx, uid, cat, today); err == nil {
			targets[cat] = target
		}
		sets, err := h.ds.QuerySetsRange(ctx, uid, cat, today, tomorrow)
		if err != nil {
			h.log.Warn("today summary: set query failed", "category", cat, "error", err)
			continue
		}
		if len(sets) > 0 {
			setsToday[cat] = sets
		}
	}

	summary := map[string]any{
		"date":       today.Format(time.DateOnly),
		"targets":    targets,
		"sets_today": setsToday,
		"movements":  movements,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
