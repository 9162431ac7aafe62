package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spendquest-app/spendquest/internal/domain"
)

// ─── Progression REST handlers ──────────────────────────────────────────────
// Validation failures map to 400 before any mutation; a store failure
// maps to 503 and tells the caller the action may not have persisted.

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrEmptyCategory),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrUnknownReportKind):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store unavailable — the operation may not have persisted")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- POST /api/users/{userID}/expenses ---

type recordExpenseRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

func (s *Server) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	var req recordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.engine.RecordExpense(r.Context(), chi.URLParam(r, "userID"), req.Category, req.Amount)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- POST /api/users/{userID}/reports ---

type recordReportRequest struct {
	Kind string `json:"kind"`
}

func (s *Server) handleRecordReportView(w http.ResponseWriter, r *http.Request) {
	var req recordReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.engine.RecordReportView(r.Context(), chi.URLParam(r, "userID"), req.Kind)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- POST /api/users/{userID}/month-outcome ---

type monthOutcomeRequest struct {
	UnderBudget bool `json:"under_budget"`
}

func (s *Server) handleMonthOutcome(w http.ResponseWriter, r *http.Request) {
	var req monthOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.engine.RecordMonthBudgetOutcome(r.Context(), chi.URLParam(r, "userID"), req.UnderBudget)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- POST /api/users/{userID}/freezes ---

func (s *Server) handlePurchaseFreeze(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.PurchaseStreakFreeze(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- GET /api/users/{userID}/stats ---

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Stats(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- GET /api/users/{userID}/achievements ---

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	views, err := s.engine.Achievements(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": views,
	})
}
