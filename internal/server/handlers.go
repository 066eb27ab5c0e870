package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meltforce/repwave/internal/catalog"
	"github.com/meltforce/repwave/internal/models"
	"github.com/meltforce/repwave/internal/progression"
	"github.com/meltforce/repwave/internal/scheduler"
	"github.com/meltforce/repwave/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// userID resolves the request identity to a database user, creating it on
// first contact.
func (s *Server) userID(r *http.Request) (int, error) {
	info, _ := r.Context().Value(userInfoKey).(UserInfo)
	if info.Login == "" {
		info = UserInfo{Login: "local", DisplayName: "Local Dev User"}
	}
	return s.db.GetOrCreateUser(r.Context(), info.Login, info.DisplayName)
}

func (s *Server) mustUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	uid, err := s.userID(r)
	if err != nil {
		s.log.Error("resolving user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "resolving user failed")
		return 0, false
	}
	return uid, true
}

// categoryParam parses the {category} URL parameter.
func categoryParam(r *http.Request) (catalog.Category, error) {
	return catalog.ParseCategory(chi.URLParam(r, "category"))
}

// dateQuery parses an optional YYYY-MM-DD query parameter as midnight in the
// server location, defaulting to today.
func (s *Server) dateQuery(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return scheduler.Midnight(time.Now(), s.loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q", name, v)
	}
	return t, nil
}

type logSetEntry struct {
	Reps        int        `json:"reps"`
	RPE         *int       `json:"rpe,omitempty"`
	IsMaxEffort bool       `json:"is_max_effort,omitempty"`
	SetNumber   int        `json:"set_number,omitempty"`
	LoggedAt    *time.Time `json:"logged_at,omitempty"`
}

type logSetsRequest struct {
	Category string        `json:"category"`
	Date     string        `json:"date,omitempty"`
	Sets     []logSetEntry `json:"sets"`
}

func (s *Server) handleLogSets(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req logSetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	cat, err := catalog.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Sets) == 0 {
		writeError(w, http.StatusBadRequest, "sets is empty")
		return
	}

	day := scheduler.Midnight(time.Now(), s.loc)
	if req.Date != "" {
		day, err = time.ParseInLocation("2006-01-02", req.Date, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date "+req.Date)
			return
		}
	}

	rows, err := s.buildSetRows(r, uid, cat, day, req.Sets)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inserted, err := s.db.InsertLoggedSets(r.Context(), rows)
	if err != nil {
		s.log.Error("inserting sets failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inserted": inserted})
}

// buildSetRows validates entries and assigns contiguous set numbers within
// the day for entries that arrive without one.
func (s *Server) buildSetRows(r *http.Request, uid int, cat catalog.Category, day time.Time, entries []logSetEntry) ([]models.LoggedSetRow, error) {
	nextNum := 0
	rows := make([]models.LoggedSetRow, 0, len(entries))
	for i, e := range entries {
		if e.Reps <= 0 {
			return nil, fmt.Errorf("set %d: reps must be positive", i+1)
		}
		if e.RPE != nil && (*e.RPE < 1 || *e.RPE > 10) {
			return nil, fmt.Errorf("set %d: rpe must be 1-10", i+1)
		}

		num := e.SetNumber
		if num == 0 {
			if nextNum == 0 {
				n, err := s.db.NextSetNumber(r.Context(), uid, cat, day)
				if err != nil {
					return nil, err
				}
				nextNum = n
			}
			num = nextNum
			nextNum++
		}

		loggedAt := time.Now().In(s.loc)
		if e.LoggedAt != nil {
			loggedAt = e.LoggedAt.In(s.loc)
		} else if !scheduler.Midnight(loggedAt, s.loc).Equal(day) {
			// Backfilled day: anchor the timestamp inside it.
			loggedAt = day.Add(12 * time.Hour)
		}

		rows = append(rows, models.LoggedSetRow{
			ID:          uuid.New(),
			UserID:      uid,
			Category:    cat,
			Reps:        e.Reps,
			RPE:         e.RPE,
			IsMaxEffort: e.IsMaxEffort,
			SetNumber:   num,
			LoggedAt:    loggedAt,
		})
	}
	return rows, nil
}

type maxEffortRequest struct {
	Category string `json:"category"`
	Reps     int    `json:"reps"`
	Date     string `json:"date,omitempty"`
}

// handleMaxEffort records a max-effort test: it refreshes the movement
// benchmark, resets the daily target to 80% of the result, logs the set, and
// applies the auto-progression rule.
func (s *Server) handleMaxEffort(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req maxEffortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	cat, err := catalog.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Reps <= 0 {
		writeError(w, http.StatusBadRequest, "reps must be positive")
		return
	}

	day := scheduler.Midnight(time.Now(), s.loc)
	if req.Date != "" {
		day, err = time.ParseInLocation("2006-01-02", req.Date, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date "+req.Date)
			return
		}
	}

	// First test for a category starts on the standard movement.
	variationID := ""
	if mov, err := s.db.GetMovement(r.Context(), uid, cat); err == nil {
		variationID = mov.VariationID
	} else if errors.Is(err, storage.ErrNotFound) {
		std, ok := s.catalog.Standard(cat)
		if !ok {
			writeError(w, http.StatusInternalServerError, "catalog has no standard variation for "+string(cat))
			return
		}
		variationID = std.ID
	} else {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	mov, err := s.db.UpsertMovementBenchmark(r.Context(), uid, cat, variationID, req.Reps, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	target := progression.InitialDailyTarget(req.Reps)
	err = s.db.AppendDailyTarget(r.Context(), models.DailyTargetRow{
		UserID:   uid,
		Category: cat,
		Date:     day,
		Target:   target,
		Source:   models.TargetSourceInitial,
		Reason:   fmt.Sprintf("max-effort test: %d reps", req.Reps),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Log the test itself as a max-effort set.
	num, err := s.db.NextSetNumber(r.Context(), uid, cat, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_, err = s.db.InsertLoggedSets(r.Context(), []models.LoggedSetRow{{
		ID:          uuid.New(),
		UserID:      uid,
		Category:    cat,
		Reps:        req.Reps,
		IsMaxEffort: true,
		SetNumber:   num,
		LoggedAt:    day.Add(12 * time.Hour),
	}})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Auto-progression: a scaled variation outgrown at this benchmark swaps
	// for the next harder one.
	var progressedTo *catalog.Variation
	if current, ok := s.catalog.ByID(cat, mov.VariationID); ok {
		if next, ok := progression.ShouldAutoProgress(current, req.Reps, s.catalog.NextHarder); ok {
			if err := s.db.UpdateMovementVariation(r.Context(), uid, cat, next.ID); err != nil {
				s.log.Error("auto-progression update failed", "error", err)
			} else {
				mov.VariationID = next.ID
				progressedTo = &next
				s.log.Info("auto-progressed",
					"user", uid, "category", cat, "variation", next.ID)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"movement":      mov,
		"daily_target":  target,
		"progressed_to": progressedTo,
	})
}

type readinessRequest struct {
	Score int    `json:"score"`
	Date  string `json:"date,omitempty"`
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}

	var req readinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Score < 1 || req.Score > 5 {
		writeError(w, http.StatusBadRequest, "score must be 1-5")
		return
	}

	day := scheduler.Midnight(time.Now(), s.loc)
	if req.Date != "" {
		var err error
		day, err = time.ParseInLocation("2006-01-02", req.Date, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date "+req.Date)
			return
		}
	}

	if err := s.db.UpsertReadiness(r.Context(), uid, day, req.Score); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": day.Format("2006-01-02"), "score": req.Score})
}

func (s *Server) handleQuerySets(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	cat, err := catalog.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := s.dateQuery(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start := end.AddDate(0, 0, -7)
	if v := r.URL.Query().Get("start"); v != "" {
		start, err = time.ParseInLocation("2006-01-02", v, s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date "+v)
			return
		}
	}

	sets, err := s.db.QuerySetsRange(r.Context(), uid, cat, start, end.AddDate(0, 0, 1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleGetTargets(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	cat, err := categoryParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := s.dateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	target, err := s.db.EffectiveTarget(r.Context(), uid, cat, date)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no target set; record a max-effort test first")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	history, err := s.db.TargetHistory(r.Context(), uid, cat, 30)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": cat,
		"date":     date.Format("2006-01-02"),
		"target":   target,
		"history":  history,
	})
}

// handleRecovery computes the weekly recovery breakdown for the 7-day window
// ending at the given date (default today), plus the volume adjustment it
// would imply. Nothing is persisted.
func (s *Server) handleRecovery(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	cat, err := categoryParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := s.dateQuery(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dec, err := s.planner.WeeklyDecision(r.Context(), uid, cat, end)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no benchmark or target for "+string(cat))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dec)
}

// handleAdjustPreview dry-runs the nightly rollover for one category.
func (s *Server) handleAdjustPreview(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	cat, err := categoryParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := s.dateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dec, err := s.planner.DailyDecision(r.Context(), uid, cat, date)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no target set; record a max-effort test first")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dec)
}

func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	cat, err := categoryParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.db.QueryAssessments(r.Context(), uid, cat, 12)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleMovements(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	movements, err := s.db.ListMovements(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, movements)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := categoryParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.List(cat))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	uid, ok := s.mustUserID(w, r)
	if !ok {
		return
	}
	stats, err := s.db.GetDataStats(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info, _ := r.Context().Value(userInfoKey).(UserInfo)
	if info.Login == "" {
		info = UserInfo{Login: "local", DisplayName: "Local Dev User"}
	}
	writeJSON(w, http.StatusOK, info)
}
