package mock

import (
	"context"
	"time"

	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SetParticipantTeamError = errors.New("database error")
//	svc := services.NewScheduleService(log, mockRepo, hub)
//	err := svc.SetMatchParticipantTeam(ctx, ...)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Division Errors =====
	ListDivisionsError    error
	GetDivisionError      error
	GetDivisionStateError error
	SetLoadedMatchError   error
	SetActiveMatchError   error
	NextEventVersionError error
	ListRoomsError        error
	ListTablesError       error

	// ===== Team Errors =====
	ListTeamsError           error
	GetTeamError             error
	SetTeamRegisteredError   error
	SetTeamArrivedError      error
	SetTeamDisqualifiedError error

	// ===== Match Errors =====
	ListMatchesError           error
	GetMatchError              error
	SetMatchStatusError        error
	SetMatchScheduledTimeError error
	SetParticipantTeamError    error
	SwapParticipantTeamsError  error

	// ===== Judging Errors =====
	ListSessionsError            error
	GetSessionError              error
	SetSessionStatusError        error
	SetSessionScheduledTimeError error
	SetSessionTeamError          error
	SwapSessionTeamsError        error
	SetRubricStatusError         error
	ListDeliberationsError       error
	SetDeliberationStatusError   error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Division Methods =====

func (m *Repository) ListDivisions(ctx context.Context) ([]models.Division, error) {
	if m.ListDivisionsError != nil {
		return nil, m.ListDivisionsError
	}
	return m.FullRepository.ListDivisions(ctx)
}

func (m *Repository) GetDivision(ctx context.Context, id string) (*models.Division, error) {
	if m.GetDivisionError != nil {
		return nil, m.GetDivisionError
	}
	return m.FullRepository.GetDivision(ctx, id)
}

func (m *Repository) GetDivisionState(ctx context.Context, divisionID string) (models.DivisionState, error) {
	if m.GetDivisionStateError != nil {
		return models.DivisionState{}, m.GetDivisionStateError
	}
	return m.FullRepository.GetDivisionState(ctx, divisionID)
}

func (m *Repository) SetLoadedMatch(ctx context.Context, divisionID string, matchID *string) error {
	if m.SetLoadedMatchError != nil {
		return m.SetLoadedMatchError
	}
	return m.FullRepository.SetLoadedMatch(ctx, divisionID, matchID)
}

func (m *Repository) SetActiveMatch(ctx context.Context, divisionID string, matchID *string) error {
	if m.SetActiveMatchError != nil {
		return m.SetActiveMatchError
	}
	return m.FullRepository.SetActiveMatch(ctx, divisionID, matchID)
}

func (m *Repository) NextEventVersion(ctx context.Context, divisionID string) (uint64, error) {
	if m.NextEventVersionError != nil {
		return 0, m.NextEventVersionError
	}
	return m.FullRepository.NextEventVersion(ctx, divisionID)
}

func (m *Repository) ListRooms(ctx context.Context, divisionID string) ([]models.Room, error) {
	if m.ListRoomsError != nil {
		return nil, m.ListRoomsError
	}
	return m.FullRepository.ListRooms(ctx, divisionID)
}

func (m *Repository) ListTables(ctx context.Context, divisionID string) ([]models.Table, error) {
	if m.ListTablesError != nil {
		return nil, m.ListTablesError
	}
	return m.FullRepository.ListTables(ctx, divisionID)
}

// ===== Team Methods =====

func (m *Repository) ListTeams(ctx context.Context, divisionID string) ([]models.Team, error) {
	if m.ListTeamsError != nil {
		return nil, m.ListTeamsError
	}
	return m.FullRepository.ListTeams(ctx, divisionID)
}

func (m *Repository) GetTeam(ctx context.Context, divisionID, id string) (*models.Team, error) {
	if m.GetTeamError != nil {
		return nil, m.GetTeamError
	}
	return m.FullRepository.GetTeam(ctx, divisionID, id)
}

func (m *Repository) SetTeamRegistered(ctx context.Context, divisionID, id string) error {
	if m.SetTeamRegisteredError != nil {
		return m.SetTeamRegisteredError
	}
	return m.FullRepository.SetTeamRegistered(ctx, divisionID, id)
}

func (m *Repository) SetTeamArrived(ctx context.Context, divisionID, id string, arrived bool) error {
	if m.SetTeamArrivedError != nil {
		return m.SetTeamArrivedError
	}
	return m.FullRepository.SetTeamArrived(ctx, divisionID, id, arrived)
}

func (m *Repository) SetTeamDisqualified(ctx context.Context, divisionID, id string) error {
	if m.SetTeamDisqualifiedError != nil {
		return m.SetTeamDisqualifiedError
	}
	return m.FullRepository.SetTeamDisqualified(ctx, divisionID, id)
}

// ===== Match Methods =====

func (m *Repository) ListMatches(ctx context.Context, divisionID string) ([]models.Match, error) {
	if m.ListMatchesError != nil {
		return nil, m.ListMatchesError
	}
	return m.FullRepository.ListMatches(ctx, divisionID)
}

func (m *Repository) GetMatch(ctx context.Context, divisionID, id string) (*models.Match, error) {
	if m.GetMatchError != nil {
		return nil, m.GetMatchError
	}
	return m.FullRepository.GetMatch(ctx, divisionID, id)
}

func (m *Repository) SetMatchStatus(ctx context.Context, divisionID, matchID string, status models.Status, startTime *time.Time, startDelta int) error {
	if m.SetMatchStatusError != nil {
		return m.SetMatchStatusError
	}
	return m.FullRepository.SetMatchStatus(ctx, divisionID, matchID, status, startTime, startDelta)
}

func (m *Repository) SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error {
	if m.SetMatchScheduledTimeError != nil {
		return m.SetMatchScheduledTimeError
	}
	return m.FullRepository.SetMatchScheduledTime(ctx, divisionID, matchID, scheduledTime)
}

func (m *Repository) SetParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error {
	if m.SetParticipantTeamError != nil {
		return m.SetParticipantTeamError
	}
	return m.FullRepository.SetParticipantTeam(ctx, divisionID, matchID, participantID, teamID)
}

func (m *Repository) SwapParticipantTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error {
	if m.SwapParticipantTeamsError != nil {
		return m.SwapParticipantTeamsError
	}
	return m.FullRepository.SwapParticipantTeams(ctx, divisionID, matchID, participantA, participantB)
}

// ===== Judging Methods =====

func (m *Repository) ListSessions(ctx context.Context, divisionID string) ([]models.JudgingSession, error) {
	if m.ListSessionsError != nil {
		return nil, m.ListSessionsError
	}
	return m.FullRepository.ListSessions(ctx, divisionID)
}

func (m *Repository) GetSession(ctx context.Context, divisionID, id string) (*models.JudgingSession, error) {
	if m.GetSessionError != nil {
		return nil, m.GetSessionError
	}
	return m.FullRepository.GetSession(ctx, divisionID, id)
}

func (m *Repository) SetSessionStatus(ctx context.Context, divisionID, sessionID string, status models.Status, startTime *time.Time, startDelta int) error {
	if m.SetSessionStatusError != nil {
		return m.SetSessionStatusError
	}
	return m.FullRepository.SetSessionStatus(ctx, divisionID, sessionID, status, startTime, startDelta)
}

func (m *Repository) SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error {
	if m.SetSessionScheduledTimeError != nil {
		return m.SetSessionScheduledTimeError
	}
	return m.FullRepository.SetSessionScheduledTime(ctx, divisionID, sessionID, scheduledTime)
}

func (m *Repository) SetSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error {
	if m.SetSessionTeamError != nil {
		return m.SetSessionTeamError
	}
	return m.FullRepository.SetSessionTeam(ctx, divisionID, sessionID, teamID)
}

func (m *Repository) SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error {
	if m.SwapSessionTeamsError != nil {
		return m.SwapSessionTeamsError
	}
	return m.FullRepository.SwapSessionTeams(ctx, divisionID, sessionA, sessionB)
}

func (m *Repository) SetRubricStatus(ctx context.Context, divisionID, rubricID string, status models.RubricStatus) error {
	if m.SetRubricStatusError != nil {
		return m.SetRubricStatusError
	}
	return m.FullRepository.SetRubricStatus(ctx, divisionID, rubricID, status)
}

func (m *Repository) ListDeliberations(ctx context.Context, divisionID string) ([]models.Deliberation, error) {
	if m.ListDeliberationsError != nil {
		return nil, m.ListDeliberationsError
	}
	return m.FullRepository.ListDeliberations(ctx, divisionID)
}

func (m *Repository) SetDeliberationStatus(ctx context.Context, divisionID, id string, status models.Status) error {
	if m.SetDeliberationStatusError != nil {
		return m.SetDeliberationStatusError
	}
	return m.FullRepository.SetDeliberationStatus(ctx, divisionID, id, status)
}
