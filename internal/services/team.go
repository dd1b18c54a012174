package services

import (
	"context"

	"github.com/tbeaumont/livesched/internal/errors"
	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/logger"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/repository"
)

// TeamServiceRepository defines the repository methods needed by
// TeamService
type TeamServiceRepository interface {
	repository.DivisionRepository
	repository.TeamRepository
}

// TeamService handles team check-in state: registration, arrival and
// disqualification
type TeamService struct {
	log         logger.Logger
	repo        TeamServiceRepository
	broadcaster Broadcaster
}

// NewTeamService creates a new TeamService
func NewTeamService(log logger.Logger, repo TeamServiceRepository, b Broadcaster) *TeamService {
	if b == nil {
		b = NopBroadcaster{}
	}
	return &TeamService{log: log, repo: repo, broadcaster: b}
}

func (s *TeamService) getTeam(ctx context.Context, divisionID, teamID string) (*models.Team, error) {
	team, err := s.repo.GetTeam(ctx, divisionID, teamID)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("team %s not found", teamID)
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

// RegisterTeam marks a team as registered at event check-in
func (s *TeamService) RegisterTeam(ctx context.Context, divisionID, teamID string) error {
	team, err := s.getTeam(ctx, divisionID, teamID)
	if err != nil {
		return err
	}
	if team.Registered {
		return errors.Conflictf("team %s is already registered", teamID)
	}

	if err := s.repo.SetTeamRegistered(ctx, divisionID, teamID); err != nil {
		return err
	}
	s.log.Info("Team registered", "division", divisionID, "team", teamID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.TeamRegistered{
			Meta:   events.Meta{Version: version},
			TeamID: teamID,
		}
	})
	return nil
}

// SetTeamArrival flips a team's arrival flag
func (s *TeamService) SetTeamArrival(ctx context.Context, divisionID, teamID string, arrived bool) error {
	if _, err := s.getTeam(ctx, divisionID, teamID); err != nil {
		return err
	}

	if err := s.repo.SetTeamArrived(ctx, divisionID, teamID, arrived); err != nil {
		return err
	}
	s.log.Info("Team arrival set", "division", divisionID, "team", teamID, "arrived", arrived)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.TeamArrived{
			Meta:    events.Meta{Version: version},
			TeamID:  teamID,
			Arrived: arrived,
		}
	})
	return nil
}

// DisqualifyTeam marks a team as disqualified. Disqualified teams keep
// their schedule slots but no longer count as missing anywhere.
func (s *TeamService) DisqualifyTeam(ctx context.Context, divisionID, teamID string) error {
	team, err := s.getTeam(ctx, divisionID, teamID)
	if err != nil {
		return err
	}
	if team.Disqualified {
		return errors.Conflictf("team %s is already disqualified", teamID)
	}

	if err := s.repo.SetTeamDisqualified(ctx, divisionID, teamID); err != nil {
		return err
	}
	s.log.Info("Team disqualified", "division", divisionID, "team", teamID)

	emitEvent(ctx, s.log, s.repo, s.broadcaster, divisionID, func(version uint64) events.Event {
		return events.TeamDisqualified{
			Meta:   events.Meta{Version: version},
			TeamID: teamID,
		}
	})
	return nil
}
