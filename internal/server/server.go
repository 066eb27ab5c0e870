package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"tailscale.com/client/tailscale"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/scheduler"
	"github.com/meltforce/repwave/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	catalog *catalog.Catalog
	planner *scheduler.Planner
	log     *slog.Logger
	apiKey  string
	loc     *time.Location
	lc      *tailscale.LocalClient
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, cat *catalog.Catalog, planner *scheduler.Planner, apiKey string, loc *time.Location, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		catalog: cat,
		planner: planner,
		log:     log,
		apiKey:  apiKey,
		loc:     loc,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale wires the tsnet local client used to resolve request identity.
func (s *Server) SetTailscale(lc *tailscale.LocalClient) {
	s.lc = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.TailscaleIdentity)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/sets", s.handleLogSets)
		r.Post("/api/v1/max-effort", s.handleMaxEffort)
		r.Post("/api/v1/readiness", s.handleReadiness)
		r.Post("/api/v1/adjust/{category}", s.handleAdjustPreview)
	})

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/sets", s.handleQuerySets)
	s.router.Get("/api/v1/targets/{category}", s.handleGetTargets)
	s.router.Get("/api/v1/recovery/{category}", s.handleRecovery)
	s.router.Get("/api/v1/assessments/{category}", s.handleAssessments)
	s.router.Get("/api/v1/movements", s.handleMovements)
	s.router.Get("/api/v1/catalog/{category}", s.handleCatalog)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/me", s.handleMe)
}
