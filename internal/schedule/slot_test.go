package schedule

import (
	"testing"

	"github.com/tbeaumont/livesched/internal/models"
)

func TestMatchSlotDenormalizes(t *testing.T) {
	snap := testSnapshot()
	slot := matchSlotFor(t, snap, "m1", "p1")

	if slot.Type != SlotMatch {
		t.Errorf("type = %q, want %q", slot.Type, SlotMatch)
	}
	if slot.Team == nil || slot.Team.ID != "t1" {
		t.Errorf("team = %+v, want t1", slot.Team)
	}
	if slot.Location != "Table 1" {
		t.Errorf("location = %q, want Table 1", slot.Location)
	}
}

func TestMatchSlotEmptySeat(t *testing.T) {
	snap := testSnapshot()
	slot := matchSlotFor(t, snap, "m2", "p4")
	if slot.Team != nil {
		t.Errorf("team = %+v, want nil for an empty seat", slot.Team)
	}
	if slot.IsMissingTeam() {
		t.Error("an empty scheduled seat is not a missing-team slot")
	}
}

func TestSessionSlotDenormalizes(t *testing.T) {
	snap := testSnapshot()
	slot := sessionSlotFor(t, snap, "s1")
	if slot.Type != SlotSession {
		t.Errorf("type = %q, want %q", slot.Type, SlotSession)
	}
	if slot.Team == nil || slot.Team.ID != "t1" {
		t.Errorf("team = %+v, want t1", slot.Team)
	}
	if slot.Location != "Room A" {
		t.Errorf("location = %q, want Room A", slot.Location)
	}
}

func TestSlotSame(t *testing.T) {
	snap := testSnapshot()
	a := matchSlotFor(t, snap, "m1", "p1")
	b := matchSlotFor(t, snap, "m1", "p2")
	s := sessionSlotFor(t, snap, "s1")
	missing := MissingTeamSlot(models.Team{ID: "t9"}, SlotMatch)

	if !a.Same(a) {
		t.Error("slot not the same as itself")
	}
	if a.Same(b) {
		t.Error("different seats of one match reported as the same slot")
	}
	if a.Same(s) || s.Same(a) {
		t.Error("match and session slots reported as the same slot")
	}
	if missing.Same(missing) {
		t.Error("missing-team slots are never the same position")
	}
}

func TestSlotStatusAndLoaded(t *testing.T) {
	snap := testSnapshot()
	snap.State.LoadedMatchID = strptr("m1")

	slot := matchSlotFor(t, snap, "m1", "p1")
	status, ok := slot.Status(snap)
	if !ok || status != models.StatusNotStarted {
		t.Errorf("status = %q (%v)", status, ok)
	}
	if !slot.IsLoaded(snap) {
		t.Error("slot of the loaded match not reported loaded")
	}
	if matchSlotFor(t, snap, "m2", "p3").IsLoaded(snap) {
		t.Error("slot of another match reported loaded")
	}

	if _, ok := MissingTeamSlot(models.Team{ID: "t9"}, SlotMatch).Status(snap); ok {
		t.Error("missing-team slot reported a status")
	}
}

func TestMissingTeamsMatchSchedule(t *testing.T) {
	snap := testSnapshot()
	round := RoundMatches(snap, models.StageRanking, 1)
	missing := MissingTeams(snap, SlotMatch, round)

	// t1, t2, t3 are seated in round 1; t4 is disqualified. Nobody is
	// missing.
	if len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}

	// Clearing t2's seat makes it a missing team.
	snap.Matches[0].Participants[1].TeamID = nil
	missing = MissingTeams(snap, SlotMatch, RoundMatches(snap, models.StageRanking, 1))
	if len(missing) != 1 || missing[0].ID != "t2" {
		t.Errorf("missing = %v, want [t2]", missing)
	}
}

func TestMissingTeamsJudgingSchedule(t *testing.T) {
	snap := testSnapshot()
	missing := MissingTeams(snap, SlotSession, nil)

	// Only t1 has a session; t4 is disqualified and excluded.
	want := map[string]bool{"t2": true, "t3": true}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want t2 and t3", missing)
	}
	for _, tm := range missing {
		if !want[tm.ID] {
			t.Errorf("unexpected missing team %q", tm.ID)
		}
	}
}

func TestRoundMatchesExcludesTestMatches(t *testing.T) {
	snap := testSnapshot()
	round := RoundMatches(snap, models.StageRanking, 1)
	for _, m := range round {
		if m.IsTest() {
			t.Errorf("test match %q in round view", m.ID)
		}
	}
	if len(round) != 3 {
		t.Errorf("round has %d matches, want 3", len(round))
	}
}
