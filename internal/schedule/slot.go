package schedule

import (
	"time"

	"github.com/tbeaumont/livesched/internal/models"
)

// SlotType distinguishes the two kinds of schedule slots.
type SlotType string

const (
	SlotMatch   SlotType = "match"
	SlotSession SlotType = "session"
)

// Slot is a uniform reference to one assignable position in the schedule:
// a table seat in a match or a room assignment in a judging session. Team,
// ScheduledTime and Location are denormalized for display. A slot with no
// match/session id but a non-nil team is a synthesized missing-team slot
// for a team awaiting placement.
type Slot struct {
	Type          SlotType     `json:"type"`
	MatchID       string       `json:"match_id,omitempty"`
	ParticipantID string       `json:"participant_id,omitempty"`
	SessionID     string       `json:"session_id,omitempty"`
	Team          *models.Team `json:"team,omitempty"`
	ScheduledTime time.Time    `json:"scheduled_time,omitempty"`
	Location      string       `json:"location,omitempty"`
}

// MatchSlot builds the slot for one participant seat of a match,
// denormalizing the assigned team and table name from the snapshot.
func MatchSlot(snap Snapshot, match models.Match, participant models.Participant) Slot {
	slot := Slot{
		Type:          SlotMatch,
		MatchID:       match.ID,
		ParticipantID: participant.ID,
		ScheduledTime: match.ScheduledTime,
	}
	if tbl, ok := snap.Table(participant.TableID); ok {
		slot.Location = tbl.Name
	}
	if participant.TeamID != nil {
		if team, ok := snap.Team(*participant.TeamID); ok {
			slot.Team = &team
		}
	}
	return slot
}

// SessionSlot builds the slot for a judging session, denormalizing the
// assigned team and room name from the snapshot.
func SessionSlot(snap Snapshot, session models.JudgingSession) Slot {
	slot := Slot{
		Type:          SlotSession,
		SessionID:     session.ID,
		ScheduledTime: session.ScheduledTime,
	}
	if room, ok := snap.Room(session.RoomID); ok {
		slot.Location = room.Name
	}
	if session.TeamID != nil {
		if team, ok := snap.Team(*session.TeamID); ok {
			slot.Team = &team
		}
	}
	return slot
}

// MissingTeamSlot synthesizes a slot for a team that has no placement in
// the current view. The slot type records which schedule the team is
// missing from, so destinations are matched against the same schedule.
func MissingTeamSlot(team models.Team, slotType SlotType) Slot {
	t := team
	return Slot{Type: slotType, Team: &t}
}

// IsMissingTeam reports whether the slot is a synthesized missing-team
// slot rather than a real schedule position.
func (sl Slot) IsMissingTeam() bool {
	return sl.MatchID == "" && sl.SessionID == "" && sl.Team != nil
}

// Same reports whether two slots reference the same schedule position.
// Missing-team slots are never the same position as anything.
func (sl Slot) Same(other Slot) bool {
	if sl.IsMissingTeam() || other.IsMissingTeam() {
		return false
	}
	if sl.Type != other.Type {
		return false
	}
	if sl.Type == SlotMatch {
		return sl.ParticipantID == other.ParticipantID
	}
	return sl.SessionID == other.SessionID
}

// Status resolves the lifecycle status of the slot's underlying entity.
// The second return is false when the entity is absent from the snapshot
// or the slot is a missing-team slot.
func (sl Slot) Status(snap Snapshot) (models.Status, bool) {
	switch {
	case sl.MatchID != "":
		m, ok := snap.Match(sl.MatchID)
		if !ok {
			return "", false
		}
		return m.Status, true
	case sl.SessionID != "":
		sess, ok := snap.Session(sl.SessionID)
		if !ok {
			return "", false
		}
		return sess.Status, true
	}
	return "", false
}

// IsLoaded reports whether the slot belongs to the match currently staged
// at the field.
func (sl Slot) IsLoaded(snap Snapshot) bool {
	return sl.MatchID != "" && snap.LoadedMatchID() == sl.MatchID
}

// MissingTeams returns the teams that have no placement in the given view:
// for the match schedule, teams absent from the provided round's matches;
// for the judging schedule, teams with no session. Disqualified teams are
// excluded, they are not awaiting placement.
func MissingTeams(snap Snapshot, slotType SlotType, roundMatches []models.Match) []models.Team {
	placed := make(map[string]bool)
	switch slotType {
	case SlotMatch:
		for _, m := range roundMatches {
			if m.IsTest() {
				continue
			}
			for _, p := range m.Participants {
				if p.TeamID != nil {
					placed[*p.TeamID] = true
				}
			}
		}
	case SlotSession:
		for _, sess := range snap.Sessions {
			if sess.TeamID != nil {
				placed[*sess.TeamID] = true
			}
		}
	}

	var missing []models.Team
	for _, team := range snap.Teams {
		if !placed[team.ID] && !team.Disqualified {
			missing = append(missing, team)
		}
	}
	return missing
}

// RoundMatches returns the non-test matches of one stage and round, in
// schedule order.
func RoundMatches(snap Snapshot, stage models.Stage, round int) []models.Match {
	var out []models.Match
	for _, m := range snap.Matches {
		if m.Stage == stage && m.Round == round {
			out = append(out, m)
		}
	}
	return out
}
