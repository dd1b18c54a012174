package schedule

import (
	"testing"
	"time"

	"github.com/tbeaumont/livesched/internal/events"
)

func TestReduceSelectionPicksUpSource(t *testing.T) {
	snap := testSnapshot()
	slot := matchSlotFor(t, snap, "m1", "p1")

	sel, dest := ReduceSelection(snap, Selection{}, slot)
	if dest != nil {
		t.Fatal("first click produced a destination")
	}
	if !sel.Active() || !sel.Slot.Same(slot) {
		t.Fatalf("selection = %+v, want the clicked slot held", sel)
	}
	if sel.SourceType != SourceReschedule {
		t.Errorf("sourceType = %q, want %q", sel.SourceType, SourceReschedule)
	}
	if sel.Action != ActionMove {
		t.Errorf("action = %q, want default %q", sel.Action, ActionMove)
	}
}

func TestReduceSelectionRejectsDisabledSource(t *testing.T) {
	snap := testSnapshot()
	running := Reconcile(snap, events.MatchStarted{MatchID: "m1", StartTime: time.Now()})
	slot := matchSlotFor(t, running, "m1", "p1")

	sel, dest := ReduceSelection(running, Selection{}, slot)
	if dest != nil || sel.Active() {
		t.Fatalf("disabled slot was picked up: %+v", sel)
	}
	if sel.Reason != ReasonSourceNotSelectable {
		t.Errorf("reason = %q, want %q", sel.Reason, ReasonSourceNotSelectable)
	}
	if sel.SourceType != SourceDisabledInProgress {
		t.Errorf("sourceType = %q, want %q", sel.SourceType, SourceDisabledInProgress)
	}
}

func TestReduceSelectionUnknownSlot(t *testing.T) {
	snap := testSnapshot()
	sel, dest := ReduceSelection(snap, Selection{}, Slot{Type: SlotMatch, MatchID: "ghost"})
	if dest != nil || sel.Active() {
		t.Fatal("vanished slot was picked up")
	}
	if sel.Reason != ReasonUnknownEntity {
		t.Errorf("reason = %q, want %q", sel.Reason, ReasonUnknownEntity)
	}
}

func TestReduceSelectionClickAgainDeselects(t *testing.T) {
	snap := testSnapshot()
	slot := matchSlotFor(t, snap, "m1", "p1")

	sel, _ := ReduceSelection(snap, Selection{}, slot)
	sel, dest := ReduceSelection(snap, sel, slot)
	if dest != nil || sel.Active() {
		t.Errorf("second click on the held slot did not deselect: %+v", sel)
	}
}

func TestReduceSelectionValidDestination(t *testing.T) {
	snap := testSnapshot()
	source := matchSlotFor(t, snap, "m1", "p1")
	target := matchSlotFor(t, snap, "m2", "p4")

	sel, _ := ReduceSelection(snap, Selection{}, source)
	sel, dest := ReduceSelection(snap, sel, target)
	if dest == nil || !dest.Same(target) {
		t.Fatalf("destination = %+v, want the clicked slot", dest)
	}
	if sel.Active() {
		t.Error("selection not cleared after a completed pair")
	}
}

func TestReduceSelectionInvalidDestinationKeepsSource(t *testing.T) {
	snap := testSnapshot()
	source := matchSlotFor(t, snap, "m1", "p1")
	target := matchSlotFor(t, snap, "m3", "p5") // completed

	sel, _ := ReduceSelection(snap, Selection{}, source)
	sel, dest := ReduceSelection(snap, sel, target)
	if dest != nil {
		t.Fatal("invalid destination was returned")
	}
	if !sel.Active() || !sel.Slot.Same(source) {
		t.Fatalf("source dropped after an invalid destination: %+v", sel)
	}
	if sel.Reason != ReasonDestinationFinished {
		t.Errorf("reason = %q, want %q", sel.Reason, ReasonDestinationFinished)
	}
}

func TestSelectionWithAction(t *testing.T) {
	snap := testSnapshot()
	source := matchSlotFor(t, snap, "m1", "p1")
	sel, _ := ReduceSelection(snap, Selection{}, source)

	sel = sel.WithAction(ActionReplace)
	if sel.Action != ActionReplace {
		t.Errorf("action = %q, want %q", sel.Action, ActionReplace)
	}

	// A rematch source cannot switch to replace.
	rematch, _ := ReduceSelection(snap, Selection{}, matchSlotFor(t, snap, "m3", "p5"))
	if got := rematch.WithAction(ActionReplace); got.Action == ActionReplace {
		t.Error("rematch source accepted the replace action")
	}

	// Inactive selections ignore action changes.
	if got := (Selection{}).WithAction(ActionClear); got.Action == ActionClear {
		t.Error("inactive selection accepted an action")
	}
}
