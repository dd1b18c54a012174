package schedule

import (
	"context"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/tbeaumont/livesched/internal/errors"
)

// Mutator is the write side of the schedule: each call assigns or swaps
// a team on the upstream system. Implementations are expected to emit
// the corresponding change events so that snapshots converge.
type Mutator interface {
	SetMatchParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error
	SwapMatchTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error
	SetJudgingSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error
	SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error
}

// Orchestrator turns validated slot pairs into mutator calls. It holds
// no schedule state of its own; callers validate against a snapshot
// first and then hand the slots over.
type Orchestrator struct {
	mutator Mutator
}

func NewOrchestrator(m Mutator) *Orchestrator {
	return &Orchestrator{mutator: m}
}

// Move places the source slot's team into the destination slot. The
// destination is written first so the team is never absent from the
// schedule; when shouldCopy is set the source keeps its team and only
// the single destination write happens.
func (o *Orchestrator) Move(ctx context.Context, divisionID string, source, dest Slot, shouldCopy bool) error {
	if source.Team == nil {
		return apperrors.InvalidInput("source slot has no team")
	}
	if err := o.assign(ctx, divisionID, dest, &source.Team.ID); err != nil {
		return err
	}
	if shouldCopy || source.IsMissingTeam() {
		return nil
	}
	return o.assign(ctx, divisionID, source, nil)
}

// Replace swaps the teams of two slots. Slots within the same match (or
// a pair of judging sessions) swap atomically in a single call; slots in
// different matches are written concurrently, one call per slot.
func (o *Orchestrator) Replace(ctx context.Context, divisionID string, source, dest Slot) error {
	if source.IsMissingTeam() || dest.IsMissingTeam() {
		return apperrors.InvalidInput("replace requires two scheduled slots")
	}
	if source.Type != dest.Type {
		return apperrors.InvalidInput("replace requires slots of the same kind")
	}

	if source.Type == SlotSession {
		return o.mutator.SwapSessionTeams(ctx, divisionID, source.SessionID, dest.SessionID)
	}
	if source.MatchID == dest.MatchID {
		return o.mutator.SwapMatchTeams(ctx, divisionID, source.MatchID, source.ParticipantID, dest.ParticipantID)
	}

	srcTeam := teamID(source)
	dstTeam := teamID(dest)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return o.assign(gctx, divisionID, source, dstTeam)
	})
	g.Go(func() error {
		return o.assign(gctx, divisionID, dest, srcTeam)
	})
	return g.Wait()
}

// Clear removes the team from the slot.
func (o *Orchestrator) Clear(ctx context.Context, divisionID string, slot Slot) error {
	if slot.IsMissingTeam() {
		return apperrors.InvalidInput("slot has no schedule position to clear")
	}
	return o.assign(ctx, divisionID, slot, nil)
}

// Assign writes a team id (or nil) into a slot directly.
func (o *Orchestrator) Assign(ctx context.Context, divisionID string, slot Slot, teamID *string) error {
	return o.assign(ctx, divisionID, slot, teamID)
}

func (o *Orchestrator) assign(ctx context.Context, divisionID string, slot Slot, teamID *string) error {
	switch slot.Type {
	case SlotMatch:
		return o.mutator.SetMatchParticipantTeam(ctx, divisionID, slot.MatchID, slot.ParticipantID, teamID)
	case SlotSession:
		return o.mutator.SetJudgingSessionTeam(ctx, divisionID, slot.SessionID, teamID)
	}
	return apperrors.InvalidInput("slot has no schedule position")
}

func teamID(slot Slot) *string {
	if slot.Team == nil {
		return nil
	}
	id := slot.Team.ID
	return &id
}
