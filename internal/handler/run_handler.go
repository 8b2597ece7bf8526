// internal/handler/run_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/automailer-backend/internal/repository"
)

// RunHandler holds the dependencies for run-related HTTP handlers
type RunHandler struct {
	Runs     repository.RunRepositoryInterface
	Outcomes repository.OutcomeRepositoryInterface
}

// GetRunHandler returns one run with its status and summary counts
func (h *RunHandler) GetRunHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	run, err := h.Runs.GetByID(id)
	if err != nil {
		http.Error(w, "failed to fetch run: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// ListRunOutcomesHandler returns the run's outcomes in row order
func (h *RunHandler) ListRunOutcomesHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	run, err := h.Runs.GetByID(id)
	if err != nil {
		http.Error(w, "failed to fetch run: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	outcomes, err := h.Outcomes.ListByRun(id)
	if err != nil {
		http.Error(w, "failed to fetch outcomes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": id,
		"status": run.Status,
		"data":   outcomes,
	})
}
