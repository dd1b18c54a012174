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

// JudgingServiceRepository defines the repository methods needed by
// JudgingService
type JudgingServiceRepository interface {
	repository.DivisionRepository
	repository.JudgingRepository
}

// JudgingService drives judging session lifecycles, rubric statuses and
// award deliberations
type JudgingService struct {
	log         logger.Logger
	repo        JudgingServiceRepository
	broadcaster Broadcaster
	now         func() time.Time
}

// NewJudgingService creates a new JudgingService
func NewJudgingService(log logger.Logger, repo JudgingServiceRepository, b Broadcaster) *JudgingService {
	if b == nil {
		b = NopBroadcaster{}
	}
	return &JudgingService{log: log, repo: repo, broadcaster: b, now: time.Now}
}

// SetClock overrides the service clock for deterministic tests
func (s *JudgingService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *JudgingService) getSession(ctx context.Context, divisionID, sessionID string) (*models.JudgingSession, error) {
	sess, err := s.repo.GetSession(ctx, divisionID, sessionID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// StartSession moves a not-started session to in-progress, stamping the
// start time and the delta against the scheduled time
func (s *JudgingService) StartSession(ctx context.Context, divisionID, sessionID string) error {
	sess, err := s.getSession(ctx, divisionID, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != models.StatusNotStarted {
		return errors.Conflictf("session %s has already run", sessionID)
	}

	startTime := s.now()
	startDelta := int(startTime.Sub(sess.ScheduledTime) / time.Second)
	if err := s.repo.SetSessionStatus(ctx, divisionID, sessionID, models.StatusInProgress, &startTime, startDelta); err != nil {
		return err
	}
	s.log.Info("Session started", "division", divisionID, "session", sessionID, "delta", startDelta)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.JudgingSessionStarted{
			Meta:       events.Meta{Version: version},
			SessionID:  sessionID,
			StartTime:  startTime,
			StartDelta: startDelta,
		}
	})
	return nil
}

// AbortSession returns a running session to not-started, clearing its
// start fields
func (s *JudgingService) AbortSession(ctx context.Context, divisionID, sessionID string) error {
	sess, err := s.getSession(ctx, divisionID, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != models.StatusInProgress {
		return errors.Conflictf("session %s is not in progress", sessionID)
	}

	if err := s.repo.SetSessionStatus(ctx, divisionID, sessionID, models.StatusNotStarted, nil, 0); err != nil {
		return err
	}
	s.log.Info("Session aborted", "division", divisionID, "session", sessionID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.JudgingSessionAborted{
			Meta:      events.Meta{Version: version},
			SessionID: sessionID,
		}
	})
	return nil
}

// CompleteSession moves a running session to completed, keeping its start
// fields for the record
func (s *JudgingService) CompleteSession(ctx context.Context, divisionID, sessionID string) error {
	sess, err := s.getSession(ctx, divisionID, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != models.StatusInProgress {
		return errors.Conflictf("session %s is not in progress", sessionID)
	}

	if err := s.repo.SetSessionStatus(ctx, divisionID, sessionID, models.StatusCompleted, sess.StartTime, sess.StartDelta); err != nil {
		return err
	}
	s.log.Info("Session completed", "division", divisionID, "session", sessionID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.JudgingSessionCompleted{
			Meta:      events.Meta{Version: version},
			SessionID: sessionID,
		}
	})
	return nil
}

// SetRubricStatus records a rubric status transition
func (s *JudgingService) SetRubricStatus(ctx context.Context, divisionID, rubricID string, status models.RubricStatus) error {
	switch status {
	case models.RubricEmpty, models.RubricInProgress, models.RubricCompleted,
		models.RubricWaitingForReview, models.RubricReady:
	default:
		return errors.Validationf("unknown rubric status %q", status)
	}

	if err := s.repo.SetRubricStatus(ctx, divisionID, rubricID, status); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("rubric %s not found", rubricID)
		}
		return err
	}
	s.log.Info("Rubric status set", "division", divisionID, "rubric", rubricID, "status", status)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.RubricStatusChanged{
			Meta:     events.Meta{Version: version},
			RubricID: rubricID,
			Status:   status,
		}
	})
	return nil
}

// SetDeliberationStatus records an award deliberation transition
func (s *JudgingService) SetDeliberationStatus(ctx context.Context, divisionID, deliberationID string, status models.Status) error {
	if !status.Valid() {
		return errors.Validationf("unknown status %q", status)
	}

	if err := s.repo.SetDeliberationStatus(ctx, divisionID, deliberationID, status); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFoundf("deliberation %s not found", deliberationID)
		}
		return err
	}
	s.log.Info("Deliberation status set", "division", divisionID, "deliberation", deliberationID, "status", status)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.DeliberationStatusChanged{
			Meta:           events.Meta{Version: version},
			DeliberationID: deliberationID,
			Status:         status,
		}
	})
	return nil
}
