package schedule

// Selection tracks an in-flight edit: the slot the user picked up, its
// classification, and (for a replace) the second slot. It is a plain
// value; reducers return a new Selection rather than mutating.
type Selection struct {
	Slot       *Slot
	SourceType SourceType
	Action     Action
	Reason     Reason
}

// Active reports whether a source slot is currently held.
func (s Selection) Active() bool {
	return s.Slot != nil
}

// ReduceSelection advances the selection state for a click on slot. The
// rules:
//
//   - with nothing selected, a selectable slot becomes the source and an
//     unselectable one is reported with its classification;
//   - clicking the held slot again deselects it;
//   - with a source held, a second click is treated as a destination for
//     the pending action and validated; an invalid destination keeps the
//     source held and surfaces the reason.
//
// The caller performs the actual edit when the returned Selection carries
// both a source and ReasonNone for the clicked destination.
func ReduceSelection(snap Snapshot, sel Selection, slot Slot) (Selection, *Slot) {
	if !sel.Active() {
		src, ok := ClassifySource(slot, snap)
		if !ok {
			return Selection{Reason: ReasonUnknownEntity}, nil
		}
		if !src.Selectable() {
			return Selection{SourceType: src, Reason: ReasonSourceNotSelectable}, nil
		}
		held := slot
		action := sel.Action
		if !action.valid() {
			action = ActionMove
		}
		return Selection{Slot: &held, SourceType: src, Action: action}, nil
	}

	if sel.Slot.Same(slot) {
		return Selection{}, nil
	}

	reason := ValidateDestination(snap, *sel.Slot, sel.SourceType, slot)
	if reason != ReasonNone {
		next := sel
		next.Reason = reason
		return next, nil
	}
	dest := slot
	return Selection{}, &dest
}

// WithAction returns the selection with its pending action changed, if
// the action is allowed for the held source.
func (s Selection) WithAction(action Action) Selection {
	if !s.Active() || !AllowedActions(s.SourceType).Allows(action) {
		return s
	}
	next := s
	next.Action = action
	next.Reason = ReasonNone
	return next
}

func (a Action) valid() bool {
	switch a {
	case ActionMove, ActionReplace, ActionClear:
		return true
	}
	return false
}
