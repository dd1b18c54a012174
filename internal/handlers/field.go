package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleLoadMatch stages a match at the field
func (h *Handlers) handleLoadMatch(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")

	if err := h.Field.LoadMatch(r.Context(), divisionID, matchID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Match loaded")
}

// handleStartMatch starts the match at the field
func (h *Handlers) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")

	if err := h.Field.StartMatch(r.Context(), divisionID, matchID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Match started")
}

// handleAbortMatch aborts a running match back to not-started
func (h *Handlers) handleAbortMatch(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")

	if err := h.Field.AbortMatch(r.Context(), divisionID, matchID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Match aborted")
}

// handleCompleteMatch completes a running match
func (h *Handlers) handleCompleteMatch(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")

	if err := h.Field.CompleteMatch(r.Context(), divisionID, matchID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Match completed")
}
