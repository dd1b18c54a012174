package services

import (
	"context"

	"github.com/tbeaumont/livesched/internal/errors"
	"github.com/tbeaumont/livesched/internal/logger"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/repository"
	"github.com/tbeaumont/livesched/internal/schedule"
)

// DivisionService assembles full division snapshots for the fetch query
type DivisionService struct {
	log  logger.Logger
	repo repository.FullRepository
}

// NewDivisionService creates a new DivisionService
func NewDivisionService(log logger.Logger, repo repository.FullRepository) *DivisionService {
	return &DivisionService{log: log, repo: repo}
}

// ListDivisions returns all divisions
func (s *DivisionService) ListDivisions(ctx context.Context) ([]models.Division, error) {
	return s.repo.ListDivisions(ctx)
}

// GetSnapshot assembles the complete current schedule state of a division
func (s *DivisionService) GetSnapshot(ctx context.Context, divisionID string) (schedule.Snapshot, error) {
	var snap schedule.Snapshot

	if _, err := s.repo.GetDivision(ctx, divisionID); err != nil {
		if err == repository.ErrNotFound {
			return snap, errors.NotFoundf("division %s not found", divisionID)
		}
		return snap, err
	}

	state, err := s.repo.GetDivisionState(ctx, divisionID)
	if err != nil {
		return snap, err
	}
	teams, err := s.repo.ListTeams(ctx, divisionID)
	if err != nil {
		return snap, err
	}
	rooms, err := s.repo.ListRooms(ctx, divisionID)
	if err != nil {
		return snap, err
	}
	tables, err := s.repo.ListTables(ctx, divisionID)
	if err != nil {
		return snap, err
	}
	matches, err := s.repo.ListMatches(ctx, divisionID)
	if err != nil {
		return snap, err
	}
	sessions, err := s.repo.ListSessions(ctx, divisionID)
	if err != nil {
		return snap, err
	}
	deliberations, err := s.repo.ListDeliberations(ctx, divisionID)
	if err != nil {
		return snap, err
	}

	return schedule.Snapshot{
		DivisionID:    divisionID,
		State:         state,
		Matches:       matches,
		Sessions:      sessions,
		Teams:         teams,
		Rooms:         rooms,
		Tables:        tables,
		Deliberations: deliberations,
	}, nil
}
