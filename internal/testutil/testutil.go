package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// StrPtr returns a pointer to s, for optional-field arguments.
func StrPtr(s string) *string { return &s }

// SeedDivision loads a small but complete division into the repository:
// three teams, two tables, one room, two ranking matches (m1 seats t1 and
// t2, m2 seats t3 and an empty seat), one completed match m3, and two
// judging sessions (s1 holds t1, s2 is empty).
func SeedDivision(t *testing.T, repo *repository.Repository, divisionID string) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC)

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seeding %s: %v", divisionID, err)
		}
	}

	must(repo.CreateDivision(ctx, models.Division{ID: divisionID, Name: "Test Division"}))
	must(repo.CreateTeam(ctx, divisionID, models.Team{ID: "t1", Number: 101, Name: "Gear Giants", Registered: true}))
	must(repo.CreateTeam(ctx, divisionID, models.Team{ID: "t2", Number: 102, Name: "Brick Busters", Registered: true}))
	must(repo.CreateTeam(ctx, divisionID, models.Team{ID: "t3", Number: 103, Name: "Servo Squad", Registered: true}))
	must(repo.CreateTable(ctx, divisionID, models.Table{ID: "tbl1", Name: "Table 1"}))
	must(repo.CreateTable(ctx, divisionID, models.Table{ID: "tbl2", Name: "Table 2"}))
	must(repo.CreateRoom(ctx, divisionID, models.Room{ID: "room1", Name: "Room A"}))

	must(repo.CreateMatch(ctx, divisionID, models.Match{
		ID: "m1", Number: 1, Stage: models.StageRanking, Round: 1,
		Status: models.StatusNotStarted, ScheduledTime: base,
		Participants: []models.Participant{
			{ID: "p1", TableID: "tbl1", TeamID: StrPtr("t1")},
			{ID: "p2", TableID: "tbl2", TeamID: StrPtr("t2")},
		},
	}))
	must(repo.CreateMatch(ctx, divisionID, models.Match{
		ID: "m2", Number: 2, Stage: models.StageRanking, Round: 1,
		Status: models.StatusNotStarted, ScheduledTime: base.Add(10 * time.Minute),
		Participants: []models.Participant{
			{ID: "p3", TableID: "tbl1", TeamID: StrPtr("t3")},
			{ID: "p4", TableID: "tbl2"},
		},
	}))
	must(repo.CreateMatch(ctx, divisionID, models.Match{
		ID: "m3", Number: 3, Stage: models.StageRanking, Round: 1,
		Status: models.StatusCompleted, ScheduledTime: base.Add(-30 * time.Minute),
		Participants: []models.Participant{
			{ID: "p5", TableID: "tbl1", TeamID: StrPtr("t1")},
		},
	}))

	must(repo.CreateSession(ctx, divisionID, models.JudgingSession{
		ID: "s1", Number: 1, RoomID: "room1", Status: models.StatusNotStarted,
		ScheduledTime: base, TeamID: StrPtr("t1"),
		Rubrics: []models.Rubric{
			{ID: "r1", Category: models.CategoryCoreValues, Status: models.RubricEmpty},
		},
	}))
	must(repo.CreateSession(ctx, divisionID, models.JudgingSession{
		ID: "s2", Number: 2, RoomID: "room1", Status: models.StatusNotStarted,
		ScheduledTime: base.Add(20 * time.Minute),
	}))

	must(repo.CreateDeliberation(ctx, divisionID, models.Deliberation{
		ID: "d1", Category: models.CategoryCoreValues, Status: models.StatusNotStarted,
	}))
}
