package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleSetParticipantTeam assigns a team to one match seat, or clears it
func (h *Handlers) handleSetParticipantTeam(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")
	participantID := chi.URLParam(r, "participantID")

	var req AssignTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Schedule.SetMatchParticipantTeam(r.Context(), divisionID, matchID, participantID, req.TeamID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Participant updated")
}

// handleSwapMatchTeams exchanges the teams of two seats of one match
func (h *Handlers) handleSwapMatchTeams(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")

	var req SwapParticipantsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.ParticipantA == "" || req.ParticipantB == "" {
		respondError(w, BadRequest("participant_a and participant_b are required"))
		return
	}

	if err := h.Schedule.SwapMatchTeams(r.Context(), divisionID, matchID, req.ParticipantA, req.ParticipantB); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Participants swapped")
}

// handleSetMatchScheduledTime moves a match to a new schedule position
func (h *Handlers) handleSetMatchScheduledTime(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	matchID := chi.URLParam(r, "matchID")

	var req RescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.ScheduledTime.IsZero() {
		respondError(w, BadRequest("scheduled_time is required"))
		return
	}

	if err := h.Schedule.SetMatchScheduledTime(r.Context(), divisionID, matchID, req.ScheduledTime); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Match rescheduled")
}

// handleSetSessionTeam assigns a team to a judging session, or clears it
func (h *Handlers) handleSetSessionTeam(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	sessionID := chi.URLParam(r, "sessionID")

	var req AssignTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Schedule.SetJudgingSessionTeam(r.Context(), divisionID, sessionID, req.TeamID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Session updated")
}

// handleSwapSessionTeams exchanges the teams of two judging sessions
func (h *Handlers) handleSwapSessionTeams(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")

	var req SwapSessionsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.SessionA == "" || req.SessionB == "" {
		respondError(w, BadRequest("session_a and session_b are required"))
		return
	}

	if err := h.Schedule.SwapSessionTeams(r.Context(), divisionID, req.SessionA, req.SessionB); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Sessions swapped")
}

// handleSetSessionScheduledTime moves a judging session to a new schedule
// position
func (h *Handlers) handleSetSessionScheduledTime(w http.ResponseWriter, r *http.Request) {
	divisionID := chi.URLParam(r, "divisionID")
	sessionID := chi.URLParam(r, "sessionID")

	var req RescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.ScheduledTime.IsZero() {
		respondError(w, BadRequest("scheduled_time is required"))
		return
	}

	if err := h.Schedule.SetSessionScheduledTime(r.Context(), divisionID, sessionID, req.ScheduledTime); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Session rescheduled")
}
