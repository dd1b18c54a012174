package handlers

import "time"

// AssignTeamRequest sets or clears a team reference on a match seat or a
// judging session. A null team_id clears the slot.
type AssignTeamRequest struct {
	TeamID *string `json:"team_id"`
}

// SwapParticipantsRequest exchanges the teams of two seats of one match
type SwapParticipantsRequest struct {
	ParticipantA string `json:"participant_a"`
	ParticipantB string `json:"participant_b"`
}

// SwapSessionsRequest exchanges the teams of two judging sessions
type SwapSessionsRequest struct {
	SessionA string `json:"session_a"`
	SessionB string `json:"session_b"`
}

// RescheduleRequest moves a match or session to a new scheduled time
type RescheduleRequest struct {
	ScheduledTime time.Time `json:"scheduled_time"`
}

// ArrivalRequest sets a team's arrival flag
type ArrivalRequest struct {
	Arrived bool `json:"arrived"`
}

// RubricStatusRequest sets a rubric's editing status
type RubricStatusRequest struct {
	Status string `json:"status"`
}

// StatusRequest sets a generic lifecycle status
type StatusRequest struct {
	Status string `json:"status"`
}
