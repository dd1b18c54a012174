package services_test

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/tbeaumont/livesched/internal/errors"
	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/repository"
	"github.com/tbeaumont/livesched/internal/services"
	"github.com/tbeaumont/livesched/internal/testutil"
)

func newJudgingFixture(t *testing.T) (*services.JudgingService, *mockBroadcaster, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	testutil.SeedDivision(t, repo, "div1")
	b := &mockBroadcaster{}
	return services.NewJudgingService(testLogger(), repo, b), b, repo
}

func TestSessionLifecycle(t *testing.T) {
	svc, b, repo := newJudgingFixture(t)
	ctx := context.Background()

	scheduled := time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return scheduled.Add(5 * time.Minute) })

	if err := svc.StartSession(ctx, "div1", "s1"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sess, _ := repo.GetSession(ctx, "div1", "s1")
	if sess.Status != models.StatusInProgress || sess.StartDelta != 300 {
		t.Errorf("session = %+v", sess)
	}
	ev := b.last(t).event.(events.JudgingSessionStarted)
	if ev.SessionID != "s1" || ev.StartDelta != 300 {
		t.Errorf("event = %+v", ev)
	}

	// a second start is rejected
	wantKind(t, svc.StartSession(ctx, "div1", "s1"), apperrors.ErrConflict)

	if err := svc.CompleteSession(ctx, "div1", "s1"); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	sess, _ = repo.GetSession(ctx, "div1", "s1")
	if sess.Status != models.StatusCompleted {
		t.Errorf("status = %q", sess.Status)
	}
	if sess.StartTime == nil {
		t.Error("startTime cleared on completion")
	}
	if _, ok := b.last(t).event.(events.JudgingSessionCompleted); !ok {
		t.Errorf("event = %T, want JudgingSessionCompleted", b.last(t).event)
	}

	// completed is terminal
	wantKind(t, svc.StartSession(ctx, "div1", "s1"), apperrors.ErrConflict)
}

func TestAbortSession(t *testing.T) {
	svc, b, repo := newJudgingFixture(t)
	ctx := context.Background()

	wantKind(t, svc.AbortSession(ctx, "div1", "s1"), apperrors.ErrConflict)

	if err := svc.StartSession(ctx, "div1", "s1"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := svc.AbortSession(ctx, "div1", "s1"); err != nil {
		t.Fatalf("AbortSession: %v", err)
	}
	sess, _ := repo.GetSession(ctx, "div1", "s1")
	if sess.Status != models.StatusNotStarted || sess.StartTime != nil {
		t.Errorf("after abort session = %+v", sess)
	}
	if _, ok := b.last(t).event.(events.JudgingSessionAborted); !ok {
		t.Errorf("event = %T, want JudgingSessionAborted", b.last(t).event)
	}

	// aborted sessions may start again
	if err := svc.StartSession(ctx, "div1", "s1"); err != nil {
		t.Fatalf("restart after abort: %v", err)
	}
}

func TestSetRubricStatus(t *testing.T) {
	svc, b, repo := newJudgingFixture(t)
	ctx := context.Background()

	if err := svc.SetRubricStatus(ctx, "div1", "r1", models.RubricInProgress); err != nil {
		t.Fatalf("SetRubricStatus: %v", err)
	}
	sess, _ := repo.GetSession(ctx, "div1", "s1")
	if sess.Rubrics[0].Status != models.RubricInProgress {
		t.Errorf("rubric status = %q", sess.Rubrics[0].Status)
	}
	ev := b.last(t).event.(events.RubricStatusChanged)
	if ev.RubricID != "r1" || ev.Status != models.RubricInProgress {
		t.Errorf("event = %+v", ev)
	}

	wantKind(t, svc.SetRubricStatus(ctx, "div1", "ghost", models.RubricReady), apperrors.ErrNotFound)
	wantKind(t, svc.SetRubricStatus(ctx, "div1", "r1", "half-done"), apperrors.ErrValidation)
}

func TestSetDeliberationStatus(t *testing.T) {
	svc, b, repo := newJudgingFixture(t)
	ctx := context.Background()

	if err := svc.SetDeliberationStatus(ctx, "div1", "d1", models.StatusInProgress); err != nil {
		t.Fatalf("SetDeliberationStatus: %v", err)
	}
	ds, _ := repo.ListDeliberations(ctx, "div1")
	if ds[0].Status != models.StatusInProgress {
		t.Errorf("deliberation status = %q", ds[0].Status)
	}
	ev := b.last(t).event.(events.DeliberationStatusChanged)
	if ev.DeliberationID != "d1" || ev.Status != models.StatusInProgress {
		t.Errorf("event = %+v", ev)
	}

	wantKind(t, svc.SetDeliberationStatus(ctx, "div1", "ghost", models.StatusCompleted), apperrors.ErrNotFound)
	wantKind(t, svc.SetDeliberationStatus(ctx, "div1", "d1", "paused"), apperrors.ErrValidation)
}
