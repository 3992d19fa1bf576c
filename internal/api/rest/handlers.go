package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fortuna/aurum/internal/residuals"
	"github.com/fortuna/aurum/internal/store"
)

// RunSource provides archived runs. Satisfied by *repository.RunRepository.
type RunSource interface {
	ListRuns(ctx context.Context, limit int) ([]*store.Run, error)
	LatestRun(ctx context.Context, season string) (*store.Run, error)
	GetRunResiduals(ctx context.Context, runID uuid.UUID) ([]residuals.ResidualRecord, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	runs RunSource
}

// NewHandler creates a new handler
func NewHandler(runs RunSource) *Handler {
	return &Handler{runs: runs}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "aurum",
	})
}

// ListRuns returns archived runs, newest first
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch runs", err)
		return
	}

	respondJSON(w, http.StatusOK, runs)
}

// GetLatestRun returns the newest archived run for a season
func (h *Handler) GetLatestRun(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		respondError(w, http.StatusBadRequest, "Missing required 'season' query parameter", nil)
		return
	}

	run, err := h.runs.LatestRun(r.Context(), season)
	if err != nil {
		respondError(w, http.StatusNotFound, "No run found for season", err)
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// GetRunResiduals returns the residual table of an archived run
func (h *Handler) GetRunResiduals(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	runID, err := uuid.Parse(vars["runID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid run ID", err)
		return
	}

	records, err := h.runs.GetRunResiduals(r.Context(), runID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch residuals", err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
