package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleRegisterTeam marks a team as registered at event check-in
func (h *Handlers) handleRegisterTeam(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	teamID := chi.URLParam(r, "teamID")

	if err := h.Team.RegisterTeam(r.Context(), divisionID, teamID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Team registered")
}

// handleSetTeamArrival flips a team's arrival flag
func (h *Handlers) handleSetTeamArrival(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	teamID := chi.URLParam(r, "teamID")

	var req ArrivalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Team.SetTeamArrival(r.Context(), divisionID, teamID, req.Arrived); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Team arrival updated")
}

// handleDisqualifyTeam marks a team as disqualified
func (h *Handlers) handleDisqualifyTeam(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	teamID := chi.URLParam(r, "teamID")

	if err := h.Team.DisqualifyTeam(r.Context(), divisionID, teamID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Team disqualified")
}
