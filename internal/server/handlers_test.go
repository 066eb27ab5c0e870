package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meltforce/repwave/internal/catalog"
)

// TestHandleMeDefault verifies /api/v1/me returns the dev user identity when
// no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestHandleMeTailscaleUser verifies /api/v1/me reflects the identity the
// middleware put into context.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
}

// TestHandleCatalog verifies the catalog endpoint serves the embedded ladder
// and rejects unknown categories.
func TestHandleCatalog(t *testing.T) {
	c, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	s := &Server{catalog: c}

	router := chiRouterForTest(s)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/push", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var vars []catalog.Variation
	if err := json.NewDecoder(rec.Body).Decode(&vars); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(vars) == 0 {
		t.Fatal("empty push catalog")
	}
	if vars[0].ID != "wall-pushup" {
		t.Errorf("first push variation = %q, want wall-pushup", vars[0].ID)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/arms", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d, want 400", rec.Code)
	}
}

// TestBuildSetRowsValidation verifies rep and RPE validation for
// pre-numbered entries (no database access on that path).
func TestBuildSetRowsValidation(t *testing.T) {
	s := &Server{loc: time.UTC}
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sets", nil)

	bad := []logSetEntry{{Reps: 0, SetNumber: 1}}
	if _, err := s.buildSetRows(req, 1, catalog.Push, day, bad); err == nil {
		t.Error("zero reps accepted")
	}

	rpe := 11
	bad = []logSetEntry{{Reps: 10, RPE: &rpe, SetNumber: 1}}
	if _, err := s.buildSetRows(req, 1, catalog.Push, day, bad); err == nil {
		t.Error("rpe 11 accepted")
	}

	when := day.Add(18 * time.Hour)
	ok := []logSetEntry{{Reps: 10, SetNumber: 1, LoggedAt: &when}, {Reps: 8, SetNumber: 2, LoggedAt: &when}}
	rows, err := s.buildSetRows(req, 1, catalog.Push, day, ok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].SetNumber != 1 || rows[1].SetNumber != 2 {
		t.Errorf("rows = %+v, want set numbers 1 and 2", rows)
	}
	if rows[0].Category != catalog.Push || rows[0].UserID != 1 {
		t.Errorf("row metadata = %+v", rows[0])
	}
}

// chiRouterForTest builds a router with only the catalog route, avoiding the
// middleware stack that needs a database.
func chiRouterForTest(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/catalog/{category}", s.handleCatalog)
	return r
}
