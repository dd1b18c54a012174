package services

import (
	"context"
	"time"

	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/schedule"
)

// DivisionServicer defines the interface for division queries
type DivisionServicer interface {
	ListDivisions(ctx context.Context) ([]models.Division, error)
	GetSnapshot(ctx context.Context, divisionID string) (schedule.Snapshot, error)
}

// ScheduleServicer defines the interface for schedule edit operations
type ScheduleServicer interface {
	SetMatchParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error
	SwapMatchTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error
	SetJudgingSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error
	SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error
	SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error
	SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error
}

// FieldServicer defines the interface for field lifecycle operations
type FieldServicer interface {
	LoadMatch(ctx context.Context, divisionID, matchID string) error
	StartMatch(ctx context.Context, divisionID, matchID string) error
	AbortMatch(ctx context.Context, divisionID, matchID string) error
	CompleteMatch(ctx context.Context, divisionID, matchID string) error
}

// JudgingServicer defines the interface for judging operations
type JudgingServicer interface {
	StartSession(ctx context.Context, divisionID, sessionID string) error
	AbortSession(ctx context.Context, divisionID, sessionID string) error
	CompleteSession(ctx context.Context, divisionID, sessionID string) error
	SetRubricStatus(ctx context.Context, divisionID, rubricID string, status models.RubricStatus) error
	SetDeliberationStatus(ctx context.Context, divisionID, deliberationID string, status models.Status) error
}

// TeamServicer defines the interface for team check-in operations
type TeamServicer interface {
	RegisterTeam(ctx context.Context, divisionID, teamID string) error
	SetTeamArrival(ctx context.Context, divisionID, teamID string, arrived bool) error
	DisqualifyTeam(ctx context.Context, divisionID, teamID string) error
}

// Ensure concrete types implement interfaces
var (
	_ DivisionServicer = (*DivisionService)(nil)
	_ ScheduleServicer = (*ScheduleService)(nil)
	_ FieldServicer    = (*FieldService)(nil)
	_ JudgingServicer  = (*JudgingService)(nil)
	_ TeamServicer     = (*TeamService)(nil)
)
