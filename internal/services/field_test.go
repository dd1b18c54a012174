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

func newFieldFixture(t *testing.T) (*services.FieldService, *mockBroadcaster, *repository.Repository) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	testutil.SeedDivision(t, repo, "div1")
	b := &mockBroadcaster{}
	return services.NewFieldService(testLogger(), repo, b), b, repo
}

func TestLoadMatch(t *testing.T) {
	svc, b, repo := newFieldFixture(t)
	ctx := context.Background()

	if err := svc.LoadMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("LoadMatch: %v", err)
	}
	state, _ := repo.GetDivisionState(ctx, "div1")
	if state.LoadedMatchID == nil || *state.LoadedMatchID != "m1" {
		t.Errorf("loaded = %v, want m1", state.LoadedMatchID)
	}
	ev, ok := b.last(t).event.(events.MatchLoaded)
	if !ok || ev.MatchID != "m1" {
		t.Errorf("event = %+v", b.last(t).event)
	}

	// loading another match replaces the staged one
	if err := svc.LoadMatch(ctx, "div1", "m2"); err != nil {
		t.Fatalf("LoadMatch m2: %v", err)
	}
	state, _ = repo.GetDivisionState(ctx, "div1")
	if *state.LoadedMatchID != "m2" {
		t.Errorf("loaded = %v, want m2", state.LoadedMatchID)
	}

	// a completed match cannot be staged
	wantKind(t, svc.LoadMatch(ctx, "div1", "m3"), apperrors.ErrConflict)
	wantKind(t, svc.LoadMatch(ctx, "div1", "ghost"), apperrors.ErrNotFound)
}

func TestStartMatch(t *testing.T) {
	svc, b, repo := newFieldFixture(t)
	ctx := context.Background()

	scheduled := time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return scheduled.Add(90 * time.Second) })

	if err := svc.LoadMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("LoadMatch: %v", err)
	}
	if err := svc.StartMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}

	m, _ := repo.GetMatch(ctx, "div1", "m1")
	if m.Status != models.StatusInProgress {
		t.Errorf("status = %q", m.Status)
	}
	if m.StartDelta != 90 {
		t.Errorf("startDelta = %d, want 90", m.StartDelta)
	}

	state, _ := repo.GetDivisionState(ctx, "div1")
	if state.ActiveMatchID == nil || *state.ActiveMatchID != "m1" {
		t.Errorf("active = %v, want m1", state.ActiveMatchID)
	}
	if state.LoadedMatchID != nil {
		t.Errorf("loaded = %v, want cleared after start", state.LoadedMatchID)
	}

	ev := b.last(t).event.(events.MatchStarted)
	if ev.MatchID != "m1" || ev.StartDelta != 90 {
		t.Errorf("event = %+v", ev)
	}
}

func TestStartMatchKeepsUnrelatedLoaded(t *testing.T) {
	svc, _, repo := newFieldFixture(t)
	ctx := context.Background()

	if err := svc.LoadMatch(ctx, "div1", "m2"); err != nil {
		t.Fatalf("LoadMatch: %v", err)
	}
	if err := svc.StartMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	state, _ := repo.GetDivisionState(ctx, "div1")
	if state.LoadedMatchID == nil || *state.LoadedMatchID != "m2" {
		t.Errorf("loaded = %v, want m2 untouched", state.LoadedMatchID)
	}
}

func TestStartMatchRejectsSecondActive(t *testing.T) {
	svc, _, _ := newFieldFixture(t)
	ctx := context.Background()

	if err := svc.StartMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	wantKind(t, svc.StartMatch(ctx, "div1", "m2"), apperrors.ErrConflict)
}

func TestStartMatchRejectsRerun(t *testing.T) {
	svc, _, _ := newFieldFixture(t)
	wantKind(t, svc.StartMatch(context.Background(), "div1", "m3"), apperrors.ErrConflict)
}

func TestAbortMatch(t *testing.T) {
	svc, b, repo := newFieldFixture(t)
	ctx := context.Background()

	if err := svc.StartMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	if err := svc.AbortMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("AbortMatch: %v", err)
	}

	m, _ := repo.GetMatch(ctx, "div1", "m1")
	if m.Status != models.StatusNotStarted || m.StartTime != nil || m.StartDelta != 0 {
		t.Errorf("after abort match = %+v", m)
	}
	state, _ := repo.GetDivisionState(ctx, "div1")
	if state.ActiveMatchID != nil {
		t.Errorf("active = %v, want cleared", state.ActiveMatchID)
	}
	if _, ok := b.last(t).event.(events.MatchAborted); !ok {
		t.Errorf("event = %T, want MatchAborted", b.last(t).event)
	}

	// an aborted match may be run again
	if err := svc.StartMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("restart after abort: %v", err)
	}
}

func TestCompleteMatch(t *testing.T) {
	svc, b, repo := newFieldFixture(t)
	ctx := context.Background()

	start := time.Date(2026, 6, 13, 9, 1, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return start })

	if err := svc.StartMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	if err := svc.CompleteMatch(ctx, "div1", "m1"); err != nil {
		t.Fatalf("CompleteMatch: %v", err)
	}

	m, _ := repo.GetMatch(ctx, "div1", "m1")
	if m.Status != models.StatusCompleted {
		t.Errorf("status = %q", m.Status)
	}
	if m.StartTime == nil || !m.StartTime.Equal(start) {
		t.Errorf("startTime = %v, want kept", m.StartTime)
	}
	state, _ := repo.GetDivisionState(ctx, "div1")
	if state.ActiveMatchID != nil {
		t.Errorf("active = %v, want cleared", state.ActiveMatchID)
	}
	if _, ok := b.last(t).event.(events.MatchCompleted); !ok {
		t.Errorf("event = %T, want MatchCompleted", b.last(t).event)
	}

	// completed is terminal
	wantKind(t, svc.AbortMatch(ctx, "div1", "m1"), apperrors.ErrConflict)
	wantKind(t, svc.CompleteMatch(ctx, "div1", "m1"), apperrors.ErrConflict)
}

func TestCompleteMatchRequiresRunning(t *testing.T) {
	svc, _, _ := newFieldFixture(t)
	wantKind(t, svc.CompleteMatch(context.Background(), "div1", "m1"), apperrors.ErrConflict)
}
