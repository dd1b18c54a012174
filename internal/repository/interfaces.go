package repository

import (
	"context"
	"time"

	"github.com/tbeaumont/livesched/internal/models"
)

// DivisionRepository defines division-level data operations
type DivisionRepository interface {
	ListDivisions(ctx context.Context) ([]models.Division, error)
	GetDivision(ctx context.Context, id string) (*models.Division, error)
	CreateDivision(ctx context.Context, div models.Division) error
	GetDivisionState(ctx context.Context, divisionID string) (models.DivisionState, error)
	SetLoadedMatch(ctx context.Context, divisionID string, matchID *string) error
	SetActiveMatch(ctx context.Context, divisionID string, matchID *string) error
	NextEventVersion(ctx context.Context, divisionID string) (uint64, error)
	ListRooms(ctx context.Context, divisionID string) ([]models.Room, error)
	CreateRoom(ctx context.Context, divisionID string, room models.Room) error
	ListTables(ctx context.Context, divisionID string) ([]models.Table, error)
	CreateTable(ctx context.Context, divisionID string, table models.Table) error
}

// TeamRepository defines team data operations
type TeamRepository interface {
	ListTeams(ctx context.Context, divisionID string) ([]models.Team, error)
	GetTeam(ctx context.Context, divisionID, id string) (*models.Team, error)
	CreateTeam(ctx context.Context, divisionID string, team models.Team) error
	SetTeamRegistered(ctx context.Context, divisionID, id string) error
	SetTeamArrived(ctx context.Context, divisionID, id string, arrived bool) error
	SetTeamDisqualified(ctx context.Context, divisionID, id string) error
}

// MatchRepository defines robot-game match data operations
type MatchRepository interface {
	ListMatches(ctx context.Context, divisionID string) ([]models.Match, error)
	GetMatch(ctx context.Context, divisionID, id string) (*models.Match, error)
	CreateMatch(ctx context.Context, divisionID string, match models.Match) error
	SetMatchStatus(ctx context.Context, divisionID, matchID string, status models.Status, startTime *time.Time, startDelta int) error
	SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error
	SetParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error
	SwapParticipantTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error
}

// JudgingRepository defines judging schedule data operations
type JudgingRepository interface {
	ListSessions(ctx context.Context, divisionID string) ([]models.JudgingSession, error)
	GetSession(ctx context.Context, divisionID, id string) (*models.JudgingSession, error)
	CreateSession(ctx context.Context, divisionID string, session models.JudgingSession) error
	SetSessionStatus(ctx context.Context, divisionID, sessionID string, status models.Status, startTime *time.Time, startDelta int) error
	SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error
	SetSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error
	SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error
	SetRubricStatus(ctx context.Context, divisionID, rubricID string, status models.RubricStatus) error
	ListDeliberations(ctx context.Context, divisionID string) ([]models.Deliberation, error)
	CreateDeliberation(ctx context.Context, divisionID string, d models.Deliberation) error
	SetDeliberationStatus(ctx context.Context, divisionID, id string, status models.Status) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	DivisionRepository
	TeamRepository
	MatchRepository
	JudgingRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
