package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tbeaumont/livesched/internal/models"
)

// handleStartSession starts a judging session
func (h *Handlers) handleStartSession(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.Judging.StartSession(r.Context(), divisionID, sessionID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Session started")
}

// handleAbortSession aborts a running judging session
func (h *Handlers) handleAbortSession(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.Judging.AbortSession(r.Context(), divisionID, sessionID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Session aborted")
}

// handleCompleteSession completes a running judging session
func (h *Handlers) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.Judging.CompleteSession(r.Context(), divisionID, sessionID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Session completed")
}

// handleSetRubricStatus records a rubric status transition
func (h *Handlers) handleSetRubricStatus(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	rubricID := chi.URLParam(r, "rubricID")

	var req RubricStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Judging.SetRubricStatus(r.Context(), divisionID, rubricID, models.RubricStatus(req.Status)); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Rubric updated")
}

// handleSetDeliberationStatus records an award deliberation transition
func (h *Handlers) handleSetDeliberationStatus(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	deliberationID := chi.URLParam(r, "deliberationID")

	var req StatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Judging.SetDeliberationStatus(r.Context(), divisionID, deliberationID, models.Status(req.Status)); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Deliberation updated")
}
