package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/repwave/internal/catalog"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, cat *catalog.Catalog, loc *time.Location, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepWave", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepWave calisthenics training server. Query daily rep targets, logged sets, weekly recovery scores, and exercise progression ladders. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, cat: cat, loc: loc, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetDailyTarget, Handler: h.getDailyTarget},
		server.ServerTool{Tool: toolGetSets, Handler: h.getSets},
		server.ServerTool{Tool: toolGetRecoveryScore, Handler: h.getRecoveryScore},
		server.ServerTool{Tool: toolSuggestVolumeAdjustment, Handler: h.suggestVolumeAdjustment},
		server.ServerTool{Tool: toolGetMovements, Handler: h.getMovements},
		server.ServerTool{Tool: toolGetCatalog, Handler: h.getCatalog},
		server.ServerTool{Tool: toolGetRecoveryHistory, Handler: h.getRecoveryHistory},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTodaySummary, Handler: h.todaySummary},
	)

	return s
}

type handlers struct {
	ds  DataSource
	cat *catalog.Catalog
	loc *time.Location
	log *slog.Logger
}
