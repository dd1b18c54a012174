package schedule

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/tbeaumont/livesched/internal/models"
)

// recordingMutator captures every mutation call in order.
type recordingMutator struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (m *recordingMutator) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	if m.fail != nil {
		if err, ok := m.fail[call]; ok {
			return err
		}
	}
	return nil
}

func fmtTeam(teamID *string) string {
	if teamID == nil {
		return "nil"
	}
	return *teamID
}

func (m *recordingMutator) SetMatchParticipantTeam(_ context.Context, divisionID, matchID, participantID string, teamID *string) error {
	return m.record(fmt.Sprintf("set %s/%s/%s=%s", divisionID, matchID, participantID, fmtTeam(teamID)))
}

func (m *recordingMutator) SwapMatchTeams(_ context.Context, divisionID, matchID, participantA, participantB string) error {
	return m.record(fmt.Sprintf("swap %s/%s %s<->%s", divisionID, matchID, participantA, participantB))
}

func (m *recordingMutator) SetJudgingSessionTeam(_ context.Context, divisionID, sessionID string, teamID *string) error {
	return m.record(fmt.Sprintf("session %s/%s=%s", divisionID, sessionID, fmtTeam(teamID)))
}

func (m *recordingMutator) SwapSessionTeams(_ context.Context, divisionID, sessionA, sessionB string) error {
	return m.record(fmt.Sprintf("swapsession %s/%s<->%s", divisionID, sessionA, sessionB))
}

func (m *recordingMutator) sortedCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	sort.Strings(out)
	return out
}

func TestMoveWritesDestinationFirst(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{}
	orch := NewOrchestrator(mut)

	source := matchSlotFor(t, snap, "m1", "p1") // t1
	dest := matchSlotFor(t, snap, "m2", "p4")   // empty seat

	if err := orch.Move(context.Background(), "div1", source, dest, false); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := []string{
		"set div1/m2/p4=t1",
		"set div1/m1/p1=nil",
	}
	if len(mut.calls) != 2 || mut.calls[0] != want[0] || mut.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", mut.calls, want)
	}
}

func TestMoveCopyKeepsSource(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{}
	orch := NewOrchestrator(mut)

	source := matchSlotFor(t, snap, "m3", "p5") // completed, t1
	dest := matchSlotFor(t, snap, "m2", "p4")

	if err := orch.Move(context.Background(), "div1", source, dest, true); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(mut.calls) != 1 || mut.calls[0] != "set div1/m2/p4=t1" {
		t.Errorf("calls = %v, want a single destination write", mut.calls)
	}
}

func TestMovePlacesMissingTeam(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{}
	orch := NewOrchestrator(mut)

	source := MissingTeamSlot(models.Team{ID: "t2"}, SlotMatch)
	dest := matchSlotFor(t, snap, "m2", "p4")

	if err := orch.Move(context.Background(), "div1", source, dest, false); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(mut.calls) != 1 || mut.calls[0] != "set div1/m2/p4=t2" {
		t.Errorf("calls = %v, want a single destination write", mut.calls)
	}
}

func TestMoveDestinationFailureLeavesSource(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{fail: map[string]error{
		"set div1/m2/p4=t1": fmt.Errorf("upstream down"),
	}}
	orch := NewOrchestrator(mut)

	source := matchSlotFor(t, snap, "m1", "p1")
	dest := matchSlotFor(t, snap, "m2", "p4")

	if err := orch.Move(context.Background(), "div1", source, dest, false); err == nil {
		t.Fatal("Move succeeded despite a failed destination write")
	}
	if len(mut.calls) != 1 {
		t.Errorf("calls = %v, source write should not happen after a failed destination write", mut.calls)
	}
}

func TestMoveSourceClearFailureSurfaces(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{fail: map[string]error{
		"set div1/m1/p1=nil": fmt.Errorf("upstream down"),
	}}
	orch := NewOrchestrator(mut)

	source := matchSlotFor(t, snap, "m1", "p1")
	dest := matchSlotFor(t, snap, "m2", "p4")

	// The destination write lands first, so a failed origin clear leaves
	// the team in both seats until the operator retries.
	if err := orch.Move(context.Background(), "div1", source, dest, false); err == nil {
		t.Fatal("Move succeeded despite a failed source clear")
	}
	want := []string{
		"set div1/m2/p4=t1",
		"set div1/m1/p1=nil",
	}
	if len(mut.calls) != 2 || mut.calls[0] != want[0] || mut.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", mut.calls, want)
	}
}

func TestMoveSourceWithoutTeam(t *testing.T) {
	snap := testSnapshot()
	orch := NewOrchestrator(&recordingMutator{})
	source := matchSlotFor(t, snap, "m2", "p4") // empty seat
	dest := matchSlotFor(t, snap, "m1", "p2")
	if err := orch.Move(context.Background(), "div1", source, dest, false); err == nil {
		t.Error("Move accepted a source with no team")
	}
}

func TestReplaceSameMatchSwapsAtomically(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{}
	orch := NewOrchestrator(mut)

	a := matchSlotFor(t, snap, "m1", "p1")
	b := matchSlotFor(t, snap, "m1", "p2")
	if err := orch.Replace(context.Background(), "div1", a, b); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(mut.calls) != 1 || mut.calls[0] != "swap div1/m1 p1<->p2" {
		t.Errorf("calls = %v, want a single swap", mut.calls)
	}
}

func TestReplaceAcrossMatches(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{}
	orch := NewOrchestrator(mut)

	a := matchSlotFor(t, snap, "m1", "p1") // t1
	b := matchSlotFor(t, snap, "m2", "p3") // t3
	if err := orch.Replace(context.Background(), "div1", a, b); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	// The two writes run concurrently; order is not fixed.
	want := []string{
		"set div1/m1/p1=t3",
		"set div1/m2/p3=t1",
	}
	got := mut.sortedCalls()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("calls = %v, want %v in some order", got, want)
	}
}

func TestReplaceSessionsSwapsAtomically(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{}
	orch := NewOrchestrator(mut)

	a := sessionSlotFor(t, snap, "s1")
	b := sessionSlotFor(t, snap, "s2")
	if err := orch.Replace(context.Background(), "div1", a, b); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(mut.calls) != 1 || mut.calls[0] != "swapsession div1/s1<->s2" {
		t.Errorf("calls = %v, want a single session swap", mut.calls)
	}
}

func TestReplaceRejectsMixedKinds(t *testing.T) {
	snap := testSnapshot()
	orch := NewOrchestrator(&recordingMutator{})
	a := matchSlotFor(t, snap, "m1", "p1")
	b := sessionSlotFor(t, snap, "s1")
	if err := orch.Replace(context.Background(), "div1", a, b); err == nil {
		t.Error("Replace accepted a match/session pair")
	}
	if err := orch.Replace(context.Background(), "div1", MissingTeamSlot(models.Team{ID: "t9"}, SlotMatch), a); err == nil {
		t.Error("Replace accepted a missing-team slot")
	}
}

func TestClear(t *testing.T) {
	snap := testSnapshot()
	mut := &recordingMutator{}
	orch := NewOrchestrator(mut)

	if err := orch.Clear(context.Background(), "div1", matchSlotFor(t, snap, "m1", "p1")); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := orch.Clear(context.Background(), "div1", sessionSlotFor(t, snap, "s1")); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	want := []string{
		"set div1/m1/p1=nil",
		"session div1/s1=nil",
	}
	if len(mut.calls) != 2 || mut.calls[0] != want[0] || mut.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", mut.calls, want)
	}

	if err := orch.Clear(context.Background(), "div1", MissingTeamSlot(models.Team{ID: "t9"}, SlotMatch)); err == nil {
		t.Error("Clear accepted a missing-team slot")
	}
}
