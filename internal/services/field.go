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

// FieldServiceRepository defines the repository methods needed by
// FieldService
type FieldServiceRepository interface {
	repository.DivisionRepository
	repository.MatchRepository
}

// FieldService drives the match lifecycle at the field: staging a match,
// starting it, and finishing or aborting it. It enforces that the loaded
// match is always not-started and that at most one match runs at a time.
type FieldService struct {
	log         logger.Logger
	repo        FieldServiceRepository
	broadcaster Broadcaster
	now         func() time.Time
}

// NewFieldService creates a new FieldService
func NewFieldService(log logger.Logger, repo FieldServiceRepository, b Broadcaster) *FieldService {
	if b == nil {
		b = NopBroadcaster{}
	}
	return &FieldService{log: log, repo: repo, broadcaster: b, now: time.Now}
}

// SetClock overrides the service clock. Tests use this to make start
// deltas deterministic.
func (s *FieldService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *FieldService) getMatch(ctx context.Context, divisionID, matchID string) (*models.Match, error) {
	m, err := s.repo.GetMatch(ctx, divisionID, matchID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("match %s not found", matchID)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// LoadMatch stages a match at the field, replacing any previously loaded
// match. Only a not-started match may be loaded.
func (s *FieldService) LoadMatch(ctx context.Context, divisionID, matchID string) error {
	m, err := s.getMatch(ctx, divisionID, matchID)
	if err != nil {
		return err
	}
	if m.Status != models.StatusNotStarted {
		return errors.Conflictf("match %s has already run", matchID)
	}

	if err := s.repo.SetLoadedMatch(ctx, divisionID, &matchID); err != nil {
		return err
	}
	s.log.Info("Match loaded", "division", divisionID, "match", matchID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.MatchLoaded{
			Meta:    events.Meta{Version: version},
			MatchID: matchID,
		}
	})
	return nil
}

// StartMatch moves a not-started match to in-progress, stamping the start
// time and the delta against the scheduled time. At most one match may be
// in progress per division.
func (s *FieldService) StartMatch(ctx context.Context, divisionID, matchID string) error {
	m, err := s.getMatch(ctx, divisionID, matchID)
	if err != nil {
		return err
	}
	if m.Status != models.StatusNotStarted {
		return errors.Conflictf("match %s has already run", matchID)
	}
	state, err := s.repo.GetDivisionState(ctx, divisionID)
	if err != nil {
		return err
	}
	if state.ActiveMatchID != nil {
		return errors.Conflictf("match %s is still in progress", *state.ActiveMatchID)
	}

	startTime := s.now()
	startDelta := int(startTime.Sub(m.ScheduledTime) / time.Second)
	if err := s.repo.SetMatchStatus(ctx, divisionID, matchID, models.StatusInProgress, &startTime, startDelta); err != nil {
		return err
	}
	if err := s.repo.SetActiveMatch(ctx, divisionID, &matchID); err != nil {
		return err
	}
	if state.LoadedMatchID != nil && *state.LoadedMatchID == matchID {
		if err := s.repo.SetLoadedMatch(ctx, divisionID, nil); err != nil {
			return err
		}
	}
	s.log.Info("Match started", "division", divisionID, "match", matchID, "delta", startDelta)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.MatchStarted{
			Meta:       events.Meta{Version: version},
			MatchID:    matchID,
			StartTime:  startTime,
			StartDelta: startDelta,
		}
	})
	return nil
}

// AbortMatch returns a running match to not-started, clearing its start
// fields so it can be run again
func (s *FieldService) AbortMatch(ctx context.Context, divisionID, matchID string) error {
	m, err := s.getMatch(ctx, divisionID, matchID)
	if err != nil {
		return err
	}
	if m.Status != models.StatusInProgress {
		return errors.Conflictf("match %s is not in progress", matchID)
	}

	if err := s.repo.SetMatchStatus(ctx, divisionID, matchID, models.StatusNotStarted, nil, 0); err != nil {
		return err
	}
	if err := s.clearActive(ctx, divisionID, matchID); err != nil {
		return err
	}
	s.log.Info("Match aborted", "division", divisionID, "match", matchID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.MatchAborted{
			Meta:    events.Meta{Version: version},
			MatchID: matchID,
		}
	})
	return nil
}

// CompleteMatch moves a running match to completed. The start fields are
// kept for the record.
func (s *FieldService) CompleteMatch(ctx context.Context, divisionID, matchID string) error {
	m, err := s.getMatch(ctx, divisionID, matchID)
	if err != nil {
		return err
	}
	if m.Status != models.StatusInProgress {
		return errors.Conflictf("match %s is not in progress", matchID)
	}

	if err := s.repo.SetMatchStatus(ctx, divisionID, matchID, models.StatusCompleted, m.StartTime, m.StartDelta); err != nil {
		return err
	}
	if err := s.clearActive(ctx, divisionID, matchID); err != nil {
		return err
	}
	s.log.Info("Match completed", "division", divisionID, "match", matchID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.MatchCompleted{
			Meta:    events.Meta{Version: version},
			MatchID: matchID,
		}
	})
	return nil
}

// clearActive drops the division's active-match pointer when it references
// the given match
func (s *FieldService) clearActive(ctx context.Context, divisionID, matchID string) error {
	state, err := s.repo.GetDivisionState(ctx, divisionID)
	if err != nil {
		return err
	}
	if state.ActiveMatchID == nil || *state.ActiveMatchID != matchID {
		return nil
	}
	return s.repo.SetActiveMatch(ctx, divisionID, nil)
}
