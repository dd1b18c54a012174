package schedule

import (
	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/models"
)

// Reconcile applies one change event onto a snapshot and returns the
// resulting snapshot. Only the fields named by the event are overwritten;
// every entity the event does not touch is shared with the input. Events
// referencing entities absent from the snapshot, and events older than the
// entity's version watermark, leave the snapshot unchanged. Reconcile
// never mutates its input.
func Reconcile(s Snapshot, ev events.Event) Snapshot {
	switch e := ev.(type) {
	case events.JudgingSessionStarted:
		out, _ := s.withSession(e.SessionID, e.EventVersion(), func(sess *models.JudgingSession) {
			start := e.StartTime
			sess.Status = models.StatusInProgress
			sess.StartTime = &start
			sess.StartDelta = e.StartDelta
		})
		return out

	case events.JudgingSessionAborted:
		out, _ := s.withSession(e.SessionID, e.EventVersion(), func(sess *models.JudgingSession) {
			sess.Status = models.StatusNotStarted
			sess.StartTime = nil
			sess.StartDelta = 0
		})
		return out

	case events.JudgingSessionCompleted:
		out, _ := s.withSession(e.SessionID, e.EventVersion(), func(sess *models.JudgingSession) {
			sess.Status = models.StatusCompleted
		})
		return out

	case events.JudgingSessionUpdated:
		out, _ := s.withSession(e.SessionID, e.EventVersion(), func(sess *models.JudgingSession) {
			if e.ScheduledTime != nil {
				sess.ScheduledTime = *e.ScheduledTime
			}
			if e.Assignment != nil {
				sess.TeamID = e.Assignment.TeamID
			}
		})
		return out

	case events.RubricStatusChanged:
		return s.withRubric(e.RubricID, e.EventVersion(), func(r *models.Rubric) {
			r.Status = e.Status
		})

	case events.DeliberationStatusChanged:
		return s.withDeliberation(e.DeliberationID, e.EventVersion(), func(d *models.Deliberation) {
			d.Status = e.Status
		})

	case events.MatchLoaded:
		if _, ok := s.Match(e.MatchID); !ok || s.stale("match:"+e.MatchID, e.EventVersion()) {
			return s
		}
		out := s
		id := e.MatchID
		out.State.LoadedMatchID = &id
		out.versions = s.bumped("match:"+e.MatchID, e.EventVersion())
		return out

	case events.MatchStarted:
		out, ok := s.withMatch(e.MatchID, e.EventVersion(), func(m *models.Match) {
			start := e.StartTime
			m.Status = models.StatusInProgress
			m.StartTime = &start
			m.StartDelta = e.StartDelta
		})
		if !ok {
			return s
		}
		id := e.MatchID
		out.State.ActiveMatchID = &id
		if out.LoadedMatchID() == e.MatchID {
			out.State.LoadedMatchID = nil
		}
		return out

	case events.MatchAborted:
		out, ok := s.withMatch(e.MatchID, e.EventVersion(), func(m *models.Match) {
			m.Status = models.StatusNotStarted
			m.StartTime = nil
			m.StartDelta = 0
		})
		if !ok {
			return s
		}
		if out.State.ActiveMatchID != nil && *out.State.ActiveMatchID == e.MatchID {
			out.State.ActiveMatchID = nil
		}
		return out

	case events.MatchCompleted:
		out, ok := s.withMatch(e.MatchID, e.EventVersion(), func(m *models.Match) {
			m.Status = models.StatusCompleted
		})
		if !ok {
			return s
		}
		if out.State.ActiveMatchID != nil && *out.State.ActiveMatchID == e.MatchID {
			out.State.ActiveMatchID = nil
		}
		return out

	case events.MatchUpdated:
		out, _ := s.withMatch(e.MatchID, e.EventVersion(), func(m *models.Match) {
			if e.ScheduledTime != nil {
				m.ScheduledTime = *e.ScheduledTime
			}
			if len(e.Assignments) > 0 {
				participants := make([]models.Participant, len(m.Participants))
				copy(participants, m.Participants)
				for _, a := range e.Assignments {
					for i := range participants {
						if participants[i].ID == a.ParticipantID {
							participants[i].TeamID = a.TeamID
						}
					}
				}
				m.Participants = participants
			}
		})
		return out

	case events.TeamRegistered:
		return s.withTeam(e.TeamID, e.EventVersion(), func(t *models.Team) {
			t.Registered = true
		})

	case events.TeamArrived:
		return s.withTeam(e.TeamID, e.EventVersion(), func(t *models.Team) {
			t.Arrived = e.Arrived
		})

	case events.TeamDisqualified:
		return s.withTeam(e.TeamID, e.EventVersion(), func(t *models.Team) {
			t.Disqualified = true
		})
	}

	// Unrecognized events are tolerated.
	return s
}

// Apply reconciles one event into the stored snapshot for a division.
// It reports whether a snapshot for the division exists.
func (st *Store) Apply(divisionID string, ev events.Event) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	snap, ok := st.snapshots[divisionID]
	if !ok {
		return false
	}
	st.snapshots[divisionID] = Reconcile(snap, ev)
	return true
}

func (s Snapshot) withMatch(id string, version uint64, update func(*models.Match)) (Snapshot, bool) {
	idx := -1
	for i := range s.Matches {
		if s.Matches[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.stale("match:"+id, version) {
		return s, false
	}

	matches := make([]models.Match, len(s.Matches))
	copy(matches, s.Matches)
	update(&matches[idx])

	out := s
	out.Matches = matches
	out.versions = s.bumped("match:"+id, version)
	return out, true
}

func (s Snapshot) withSession(id string, version uint64, update func(*models.JudgingSession)) (Snapshot, bool) {
	idx := -1
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.stale("session:"+id, version) {
		return s, false
	}

	sessions := make([]models.JudgingSession, len(s.Sessions))
	copy(sessions, s.Sessions)
	update(&sessions[idx])

	out := s
	out.Sessions = sessions
	out.versions = s.bumped("session:"+id, version)
	return out, true
}

func (s Snapshot) withTeam(id string, version uint64, update func(*models.Team)) Snapshot {
	idx := -1
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.stale("team:"+id, version) {
		return s
	}

	teams := make([]models.Team, len(s.Teams))
	copy(teams, s.Teams)
	update(&teams[idx])

	out := s
	out.Teams = teams
	out.versions = s.bumped("team:"+id, version)
	return out
}

// withRubric locates a rubric by id across all sessions and updates it,
// copying only the owning session and its rubric list.
func (s Snapshot) withRubric(id string, version uint64, update func(*models.Rubric)) Snapshot {
	for si := range s.Sessions {
		for ri := range s.Sessions[si].Rubrics {
			if s.Sessions[si].Rubrics[ri].ID != id {
				continue
			}
			if s.stale("rubric:"+id, version) {
				return s
			}

			sessions := make([]models.JudgingSession, len(s.Sessions))
			copy(sessions, s.Sessions)
			rubrics := make([]models.Rubric, len(sessions[si].Rubrics))
			copy(rubrics, sessions[si].Rubrics)
			update(&rubrics[ri])
			sessions[si].Rubrics = rubrics

			out := s
			out.Sessions = sessions
			out.versions = s.bumped("rubric:"+id, version)
			return out
		}
	}
	return s
}

func (s Snapshot) withDeliberation(id string, version uint64, update func(*models.Deliberation)) Snapshot {
	idx := -1
	for i := range s.Deliberations {
		if s.Deliberations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.stale("deliberation:"+id, version) {
		return s
	}

	deliberations := make([]models.Deliberation, len(s.Deliberations))
	copy(deliberations, s.Deliberations)
	update(&deliberations[idx])

	out := s
	out.Deliberations = deliberations
	out.versions = s.bumped("deliberation:"+id, version)
	return out
}
