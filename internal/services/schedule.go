package services

import (
	"context"
	"time"

	"github.com/tbeaumont/livesched/internal/errors"
	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/logger"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/repository"
)

// ScheduleServiceRepository defines the repository methods needed by
// ScheduleService
type ScheduleServiceRepository interface {
	repository.DivisionRepository
	repository.TeamRepository
	repository.MatchRepository
	repository.JudgingRepository
}

// ScheduleService handles schedule edits: team assignments on match seats
// and judging sessions, and reschedules. Every accepted edit is persisted,
// versioned and broadcast.
type ScheduleService struct {
	log         logger.Logger
	repo        ScheduleServiceRepository
	broadcaster Broadcaster
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(log logger.Logger, repo ScheduleServiceRepository, b Broadcaster) *ScheduleService {
	if b == nil {
		b = NopBroadcaster{}
	}
	return &ScheduleService{log: log, repo: repo, broadcaster: b}
}

// editableMatch loads a match and checks that it may be edited: it must
// exist, be not-started, and not be staged at the field.
func (s *ScheduleService) editableMatch(ctx context.Context, divisionID, matchID string) (*models.Match, error) {
	m, err := s.repo.GetMatch(ctx, divisionID, matchID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("match %s not found", matchID)
	}
	if err != nil {
		return nil, err
	}
	if m.Status != models.StatusNotStarted {
		return nil, errors.Conflictf("match %s is not editable", matchID)
	}
	state, err := s.repo.GetDivisionState(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	if state.LoadedMatchID != nil && *state.LoadedMatchID == matchID {
		return nil, errors.Conflictf("match %s is loaded at the field", matchID)
	}
	return m, nil
}

// editableSession loads a judging session and checks that it may be edited
func (s *ScheduleService) editableSession(ctx context.Context, divisionID, sessionID string) (*models.JudgingSession, error) {
	sess, err := s.repo.GetSession(ctx, divisionID, sessionID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, err
	}
	if sess.Status != models.StatusNotStarted {
		return nil, errors.Conflictf("session %s is not editable", sessionID)
	}
	return sess, nil
}

// requireTeam checks that a referenced team exists in the division
func (s *ScheduleService) requireTeam(ctx context.Context, divisionID string, teamID *string) error {
	if teamID == nil {
		return nil
	}
	if _, err := s.repo.GetTeam(ctx, divisionID, *teamID); err != nil {
		if err == repository.ErrNotFound {
			return errors.Validationf("team %s is not in this division", *teamID)
		}
		return err
	}
	return nil
}

// SetMatchParticipantTeam assigns a team (or clears the seat) on one
// participant slot of a match
func (s *ScheduleService) SetMatchParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error {
	m, err := s.editableMatch(ctx, divisionID, matchID)
	if err != nil {
		return err
	}
	if _, ok := m.Participant(participantID); !ok {
		return errors.NotFoundf("participant %s not found in match %s", participantID, matchID)
	}
	if err := s.requireTeam(ctx, divisionID, teamID); err != nil {
		return err
	}

	if err := s.repo.SetParticipantTeam(ctx, divisionID, matchID, participantID, teamID); err != nil {
		return err
	}
	s.log.Info("Participant team set", "division", divisionID, "match", matchID, "participant", participantID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.MatchUpdated{
			Meta:        events.Meta{Version: version},
			MatchID:     matchID,
			Assignments: []events.Assignment{{ParticipantID: participantID, TeamID: teamID}},
		}
	})
	return nil
}

// SwapMatchTeams exchanges the teams of two seats of one match atomically
func (s *ScheduleService) SwapMatchTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error {
	if participantA == participantB {
		return errors.Validation("participants must be distinct")
	}
	m, err := s.editableMatch(ctx, divisionID, matchID)
	if err != nil {
		return err
	}
	pa, ok := m.Participant(participantA)
	if !ok {
		return errors.NotFoundf("participant %s not found in match %s", participantA, matchID)
	}
	pb, ok := m.Participant(participantB)
	if !ok {
		return errors.NotFoundf("participant %s not found in match %s", participantB, matchID)
	}

	if err := s.repo.SwapParticipantTeams(ctx, divisionID, matchID, participantA, participantB); err != nil {
		return err
	}
	s.log.Info("Participant teams swapped", "division", divisionID, "match", matchID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.MatchUpdated{
			Meta:    events.Meta{Version: version},
			MatchID: matchID,
			Assignments: []events.Assignment{
				{ParticipantID: participantA, TeamID: pb.TeamID},
				{ParticipantID: participantB, TeamID: pa.TeamID},
			},
		}
	})
	return nil
}

// SetJudgingSessionTeam assigns a team (or clears the slot) on a judging
// session
func (s *ScheduleService) SetJudgingSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error {
	if _, err := s.editableSession(ctx, divisionID, sessionID); err != nil {
		return err
	}
	if err := s.requireTeam(ctx, divisionID, teamID); err != nil {
		return err
	}

	if err := s.repo.SetSessionTeam(ctx, divisionID, sessionID, teamID); err != nil {
		return err
	}
	s.log.Info("Session team set", "division", divisionID, "session", sessionID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.JudgingSessionUpdated{
			Meta:       events.Meta{Version: version},
			SessionID:  sessionID,
			Assignment: &events.SessionAssignment{TeamID: teamID},
		}
	})
	return nil
}

// SwapSessionTeams exchanges the teams of two judging sessions atomically
func (s *ScheduleService) SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error {
	if sessionA == sessionB {
		return errors.Validation("sessions must be distinct")
	}
	sa, err := s.editableSession(ctx, divisionID, sessionA)
	if err != nil {
		return err
	}
	sb, err := s.editableSession(ctx, divisionID, sessionB)
	if err != nil {
		return err
	}

	if err := s.repo.SwapSessionTeams(ctx, divisionID, sessionA, sessionB); err != nil {
		return err
	}
	s.log.Info("Session teams swapped", "division", divisionID, "sessions", sessionA+","+sessionB)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.JudgingSessionUpdated{
			Meta:       events.Meta{Version: version},
			SessionID:  sessionA,
			Assignment: &events.SessionAssignment{TeamID: sb.TeamID},
		}
	})
	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.JudgingSessionUpdated{
			Meta:       events.Meta{Version: version},
			SessionID:  sessionB,
			Assignment: &events.SessionAssignment{TeamID: sa.TeamID},
		}
	})
	return nil
}

// SetMatchScheduledTime moves a match to a new schedule position
func (s *ScheduleService) SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error {
	if _, err := s.editableMatch(ctx, divisionID, matchID); err != nil {
		return err
	}
	if err := s.repo.SetMatchScheduledTime(ctx, divisionID, matchID, scheduledTime); err != nil {
		return err
	}
	s.log.Info("Match rescheduled", "division", divisionID, "match", matchID, "time", scheduledTime)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		t := scheduledTime
		return events.MatchUpdated{
			Meta:          events.Meta{Version: version},
			MatchID:       matchID,
			ScheduledTime: &t,
		}
	})
	return nil
}

// SetSessionScheduledTime moves a judging session to a new schedule position
func (s *ScheduleService) SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error {
	if _, err := s.editableSession(ctx, divisionID, sessionID); err != nil {
		return err
	}
	if err := s.repo.SetSessionScheduledTime(ctx, divisionID, sessionID, scheduledTime); err != nil {
		return err
	}
	s.log.Info("Session rescheduled", "division", divisionID, "session", sessionID, "time", scheduledTime)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		t := scheduledTime
		return events.JudgingSessionUpdated{
			Meta:          events.Meta{Version: version},
			SessionID:     sessionID,
			ScheduledTime: &t,
		}
	})
	return nil
}
