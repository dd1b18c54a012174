// Package events defines the typed change events delivered on the push
// channel. Each kind is a closed variant carrying exactly the fields that
// changed plus the id of the entity it targets.
package events

import (
	"time"

	"github.com/tbeaumont/livesched/internal/models"
)

// Kind identifies the type of a change event.
type Kind string

// Judging events.
const (
	KindJudgingSessionStarted     Kind = "judgingSessionStarted"
	KindJudgingSessionAborted     Kind = "judgingSessionAborted"
	KindJudgingSessionCompleted   Kind = "judgingSessionCompleted"
	KindJudgingSessionUpdated     Kind = "judgingSessionUpdated"
	KindRubricStatusChanged       Kind = "rubricStatusChanged"
	KindDeliberationStatusChanged Kind = "deliberationStatusChanged"
)

// Field events.
const (
	KindMatchLoaded    Kind = "matchLoaded"
	KindMatchStarted   Kind = "matchStarted"
	KindMatchAborted   Kind = "matchAborted"
	KindMatchCompleted Kind = "matchCompleted"
	KindMatchUpdated   Kind = "matchUpdated"
)

// Team events.
const (
	KindTeamRegistered   Kind = "teamRegistered"
	KindTeamArrived      Kind = "teamArrived"
	KindTeamDisqualified Kind = "teamDisqualified"
)

// Meta carries the fields common to every change event. Version is a
// division-scoped monotonic sequence number assigned by the server; a
// consumer may ignore events whose version is not newer than the last one
// it applied for the same entity.
type Meta struct {
	Version uint64 `json:"version"`
}

// EventVersion returns the division-scoped sequence number of the event.
func (m Meta) EventVersion() uint64 { return m.Version }

// Event is implemented by all change-event payloads.
type Event interface {
	Kind() Kind
	EventVersion() uint64
}

// JudgingSessionStarted reports a session moving to in-progress.
type JudgingSessionStarted struct {
	Meta
	SessionID  string    `json:"session_id"`
	StartTime  time.Time `json:"start_time"`
	StartDelta int       `json:"start_delta"`
}

func (JudgingSessionStarted) Kind() Kind { return KindJudgingSessionStarted }

// JudgingSessionAborted reports a session returning to not-started.
type JudgingSessionAborted struct {
	Meta
	SessionID string `json:"session_id"`
}

func (JudgingSessionAborted) Kind() Kind { return KindJudgingSessionAborted }

// JudgingSessionCompleted reports a session moving to completed.
type JudgingSessionCompleted struct {
	Meta
	SessionID string `json:"session_id"`
}

func (JudgingSessionCompleted) Kind() Kind { return KindJudgingSessionCompleted }

// RubricStatusChanged reports a rubric status transition.
type RubricStatusChanged struct {
	Meta
	RubricID string              `json:"rubric_id"`
	Status   models.RubricStatus `json:"status"`
}

func (RubricStatusChanged) Kind() Kind { return KindRubricStatusChanged }

// DeliberationStatusChanged reports an award deliberation transition.
type DeliberationStatusChanged struct {
	Meta
	DeliberationID string        `json:"deliberation_id"`
	Status         models.Status `json:"status"`
}

func (DeliberationStatusChanged) Kind() Kind { return KindDeliberationStatusChanged }

// MatchLoaded reports a match being staged at the field.
type MatchLoaded struct {
	Meta
	MatchID string `json:"match_id"`
}

func (MatchLoaded) Kind() Kind { return KindMatchLoaded }

// MatchStarted reports the loaded match starting.
type MatchStarted struct {
	Meta
	MatchID    string    `json:"match_id"`
	StartTime  time.Time `json:"start_time"`
	StartDelta int       `json:"start_delta"`
}

func (MatchStarted) Kind() Kind { return KindMatchStarted }

// MatchAborted reports a running match being aborted back to not-started.
type MatchAborted struct {
	Meta
	MatchID string `json:"match_id"`
}

func (MatchAborted) Kind() Kind { return KindMatchAborted }

// MatchCompleted reports a running match completing.
type MatchCompleted struct {
	Meta
	MatchID string `json:"match_id"`
}

func (MatchCompleted) Kind() Kind { return KindMatchCompleted }

// Assignment names a new team reference for one participant slot.
// TeamID nil clears the slot.
type Assignment struct {
	ParticipantID string  `json:"participant_id"`
	TeamID        *string `json:"team_id"`
}

// MatchUpdated reports edits to a match's schedule fields. Only the fields
// present in the payload are applied; absent fields keep their value.
type MatchUpdated struct {
	Meta
	MatchID       string       `json:"match_id"`
	ScheduledTime *time.Time   `json:"scheduled_time,omitempty"`
	Assignments   []Assignment `json:"assignments,omitempty"`
}

func (MatchUpdated) Kind() Kind { return KindMatchUpdated }

// SessionAssignment names a new team reference for a judging session.
// TeamID nil clears the session's slot.
type SessionAssignment struct {
	TeamID *string `json:"team_id"`
}

// JudgingSessionUpdated reports edits to a session's schedule fields. Only
// the fields present in the payload are applied; absent fields keep their
// value.
type JudgingSessionUpdated struct {
	Meta
	SessionID     string             `json:"session_id"`
	ScheduledTime *time.Time         `json:"scheduled_time,omitempty"`
	Assignment    *SessionAssignment `json:"assignment,omitempty"`
}

func (JudgingSessionUpdated) Kind() Kind { return KindJudgingSessionUpdated }

// TeamRegistered reports a team completing event check-in.
type TeamRegistered struct {
	Meta
	TeamID string `json:"team_id"`
}

func (TeamRegistered) Kind() Kind { return KindTeamRegistered }

// TeamArrived reports a team's arrival flag changing.
type TeamArrived struct {
	Meta
	TeamID  string `json:"team_id"`
	Arrived bool   `json:"arrived"`
}

func (TeamArrived) Kind() Kind { return KindTeamArrived }

// TeamDisqualified reports a team being disqualified.
type TeamDisqualified struct {
	Meta
	TeamID string `json:"team_id"`
}

func (TeamDisqualified) Kind() Kind { return KindTeamDisqualified }
