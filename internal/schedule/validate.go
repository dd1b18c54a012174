package schedule

import "github.com/tbeaumont/livesched/internal/models"

// Action is one of the edit operations a source slot may perform.
type Action string

const (
	ActionMove    Action = "move"
	ActionReplace Action = "replace"
	ActionClear   Action = "clear"
)

// Actions is the set of edit operations admissible for a source type.
type Actions struct {
	Move    bool `json:"move"`
	Replace bool `json:"replace"`
	Clear   bool `json:"clear"`
}

// Allows reports whether the given action is in the set.
func (a Actions) Allows(action Action) bool {
	switch action {
	case ActionMove:
		return a.Move
	case ActionReplace:
		return a.Replace
	case ActionClear:
		return a.Clear
	}
	return false
}

// AllowedActions returns the edit operations admissible for a source
// type. A missing team can only be placed; a finished item's team can
// only be inserted elsewhere; a pending item has the full set.
func AllowedActions(src SourceType) Actions {
	switch src {
	case SourceMissingTeam, SourceRematch:
		return Actions{Move: true}
	case SourceReschedule:
		return Actions{Move: true, Replace: true, Clear: true}
	}
	return Actions{}
}

// Reason is a machine-readable code explaining why a destination was
// rejected. The empty reason means the destination is valid.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonSourceNotSelectable Reason = "source-not-selectable"
	ReasonDestinationMissing  Reason = "destination-missing"
	ReasonSameSlot            Reason = "same-slot"
	ReasonScheduleMismatch    Reason = "schedule-mismatch"
	ReasonUnknownEntity       Reason = "unknown-entity"
	ReasonTestMatch           Reason = "test-match"
	ReasonDestinationLoaded   Reason = "destination-loaded"
	ReasonDestinationStarted  Reason = "destination-started"
	ReasonDestinationFinished Reason = "destination-finished"
	ReasonSameTeam            Reason = "same-team"
)

// Message returns a human-readable description of the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonNone:
		return "valid destination"
	case ReasonSourceNotSelectable:
		return "the selected slot cannot start an edit"
	case ReasonDestinationMissing:
		return "the destination is not a schedule slot"
	case ReasonSameSlot:
		return "the destination is the selected slot itself"
	case ReasonScheduleMismatch:
		return "teams can only move within the same schedule"
	case ReasonUnknownEntity:
		return "the destination is no longer in the schedule"
	case ReasonTestMatch:
		return "test matches are not part of the schedule"
	case ReasonDestinationLoaded:
		return "the destination match is staged at the field"
	case ReasonDestinationStarted:
		return "the destination has already started"
	case ReasonDestinationFinished:
		return "the destination has already finished"
	case ReasonSameTeam:
		return "the destination already holds this team"
	}
	return string(r)
}

// ValidateDestination decides whether dest is a legal target for an edit
// originating at source (classified as sourceType). It returns ReasonNone
// when the pair is admissible and a rejection reason otherwise. The rules
// are uniform across source types: a destination must be a real,
// not-started slot in the same schedule, must not be the staged or running
// item, must not be the source itself, and must not already hold the
// source's team.
func ValidateDestination(snap Snapshot, source Slot, sourceType SourceType, dest Slot) Reason {
	if !sourceType.Selectable() {
		return ReasonSourceNotSelectable
	}
	if dest.IsMissingTeam() || (dest.MatchID == "" && dest.SessionID == "") {
		return ReasonDestinationMissing
	}
	if source.Same(dest) {
		return ReasonSameSlot
	}
	if source.Type != "" && source.Type != dest.Type {
		return ReasonScheduleMismatch
	}

	if dest.MatchID != "" {
		match, ok := snap.Match(dest.MatchID)
		if !ok {
			return ReasonUnknownEntity
		}
		if _, ok := match.Participant(dest.ParticipantID); !ok {
			return ReasonUnknownEntity
		}
		if match.IsTest() {
			return ReasonTestMatch
		}
		if dest.IsLoaded(snap) {
			return ReasonDestinationLoaded
		}
	}

	status, ok := dest.Status(snap)
	if !ok {
		return ReasonUnknownEntity
	}
	switch status {
	case models.StatusInProgress:
		return ReasonDestinationStarted
	case models.StatusCompleted:
		return ReasonDestinationFinished
	}

	if source.Team != nil && dest.Team != nil && source.Team.ID == dest.Team.ID {
		return ReasonSameTeam
	}
	return ReasonNone
}

// IsValidDestination reports whether dest is a legal target for an edit
// originating at source.
func IsValidDestination(snap Snapshot, source Slot, sourceType SourceType, dest Slot) bool {
	return ValidateDestination(snap, source, sourceType, dest) == ReasonNone
}
