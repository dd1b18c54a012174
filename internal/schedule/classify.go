package schedule

import "github.com/tbeaumont/livesched/internal/models"

// SourceType categorizes a slot selected as the origin of an edit.
type SourceType string

const (
	// SourceMissingTeam is a synthesized slot for a team awaiting placement.
	SourceMissingTeam SourceType = "missing-team"
	// SourceDisabledLoaded marks the currently loaded match; it cannot be
	// selected as an origin at all.
	SourceDisabledLoaded SourceType = "disabled-loaded"
	// SourceDisabledInProgress marks a running item; it cannot be selected
	// as an origin at all.
	SourceDisabledInProgress SourceType = "disabled-in-progress"
	// SourceRematch is a finished item: the team may only be inserted into
	// a new slot, the historical assignment is never cleared.
	SourceRematch SourceType = "rematch"
	// SourceReschedule is a pending item with the full set of edit actions.
	SourceReschedule SourceType = "reschedule"
)

// Selectable reports whether a slot classified as t may begin an edit.
func (t SourceType) Selectable() bool {
	switch t {
	case SourceMissingTeam, SourceRematch, SourceReschedule:
		return true
	}
	return false
}

// ClassifySource categorizes a slot selected as the origin of an edit.
// The second return is false when the slot's entity is absent from the
// snapshot, in which case the slot cannot be classified at all.
func ClassifySource(slot Slot, snap Snapshot) (SourceType, bool) {
	if slot.IsMissingTeam() {
		return SourceMissingTeam, true
	}
	if slot.IsLoaded(snap) {
		return SourceDisabledLoaded, true
	}

	status, ok := slot.Status(snap)
	if !ok {
		return "", false
	}
	switch status {
	case models.StatusInProgress:
		return SourceDisabledInProgress, true
	case models.StatusCompleted:
		return SourceRematch, true
	}
	return SourceReschedule, true
}
