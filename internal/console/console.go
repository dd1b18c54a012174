// Package console hosts the edit-validation engine for one division: a
// live snapshot kept current by pull and push, source classification,
// destination validation, and the move/replace/clear operations executed
// against the division server.
package console

import (
	"context"
	"time"

	"github.com/tbeaumont/livesched/internal/errors"
	"github.com/tbeaumont/livesched/internal/logger"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/schedule"
	"github.com/tbeaumont/livesched/pkg/lemsclient"
)

// Console is the engine wiring for one division
type Console struct {
	log          logger.Logger
	client       lemsclient.Client
	store        *schedule.Store
	orchestrator *schedule.Orchestrator
	updater      *schedule.Updater
	divisionID   string
}

// New creates a console engine for the given division. refreshInterval
// controls the periodic full refetch; zero selects the default.
func New(log logger.Logger, client lemsclient.Client, divisionID string, refreshInterval time.Duration) *Console {
	store := schedule.NewStore()
	return &Console{
		log:          log,
		client:       client,
		store:        store,
		orchestrator: schedule.NewOrchestrator(client),
		updater:      schedule.NewUpdater(store, client, client, divisionID, refreshInterval, log),
		divisionID:   divisionID,
	}
}

// DivisionID returns the division this console serves
func (c *Console) DivisionID() string {
	return c.divisionID
}

// Run keeps the snapshot current until ctx is cancelled. It fails only
// when the initial fetch fails.
func (c *Console) Run(ctx context.Context) error {
	return c.updater.Run(ctx)
}

// Snapshot returns the current schedule state
func (c *Console) Snapshot() (schedule.Snapshot, error) {
	snap, ok := c.store.Get(c.divisionID)
	if !ok {
		return schedule.Snapshot{}, errors.Internalf("no snapshot yet for division %s", c.divisionID)
	}
	return snap, nil
}

// SlotRef names one schedule slot in an API request. Kind selects the
// variant: a match seat, a judging session, or a missing team awaiting
// placement in one of the two schedules.
type SlotRef struct {
	Kind          string `json:"kind"` // match | session | missing-team
	MatchID       string `json:"match_id,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	TeamID        string `json:"team_id,omitempty"`
	// SlotType scopes a missing-team ref to one schedule
	SlotType string `json:"slot_type,omitempty"` // match | session
}

// ResolveSlot turns a slot reference into a denormalized slot against the
// current snapshot
func (c *Console) ResolveSlot(ref SlotRef) (schedule.Slot, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return schedule.Slot{}, err
	}
	return resolveSlot(snap, ref)
}

func resolveSlot(snap schedule.Snapshot, ref SlotRef) (schedule.Slot, error) {
	switch ref.Kind {
	case "match":
		m, ok := snap.Match(ref.MatchID)
		if !ok {
			return schedule.Slot{}, errors.NotFoundf("match %s not found", ref.MatchID)
		}
		p, ok := m.Participant(ref.ParticipantID)
		if !ok {
			return schedule.Slot{}, errors.NotFoundf("participant %s not found in match %s", ref.ParticipantID, ref.MatchID)
		}
		return schedule.MatchSlot(snap, m, p), nil

	case "session":
		sess, ok := snap.Session(ref.SessionID)
		if !ok {
			return schedule.Slot{}, errors.NotFoundf("session %s not found", ref.SessionID)
		}
		return schedule.SessionSlot(snap, sess), nil

	case "missing-team":
		team, ok := snap.Team(ref.TeamID)
		if !ok {
			return schedule.Slot{}, errors.NotFoundf("team %s not found", ref.TeamID)
		}
		slotType := schedule.SlotType(ref.SlotType)
		if slotType != schedule.SlotMatch && slotType != schedule.SlotSession {
			return schedule.Slot{}, errors.InvalidInputf("unknown slot type %q", ref.SlotType)
		}
		return schedule.MissingTeamSlot(team, slotType), nil
	}
	return schedule.Slot{}, errors.InvalidInputf("unknown slot kind %q", ref.Kind)
}

// Classification describes how a slot behaves as an edit source
type Classification struct {
	SourceType schedule.SourceType `json:"source_type"`
	Selectable bool                `json:"selectable"`
	Actions    schedule.Actions    `json:"actions"`
}

// Classify resolves a slot and classifies it as an edit source
func (c *Console) Classify(ref SlotRef) (Classification, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return Classification{}, err
	}
	slot, err := resolveSlot(snap, ref)
	if err != nil {
		return Classification{}, err
	}

	sourceType, ok := schedule.ClassifySource(slot, snap)
	if !ok {
		return Classification{}, errors.NotFoundf("slot references an unknown entity")
	}
	return Classification{
		SourceType: sourceType,
		Selectable: sourceType.Selectable(),
		Actions:    schedule.AllowedActions(sourceType),
	}, nil
}

// Validation is the outcome of a destination check
type Validation struct {
	Valid   bool            `json:"valid"`
	Reason  schedule.Reason `json:"reason,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Validate checks whether dest is a legal destination for source
func (c *Console) Validate(sourceRef, destRef SlotRef) (Validation, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return Validation{}, err
	}
	source, err := resolveSlot(snap, sourceRef)
	if err != nil {
		return Validation{}, err
	}
	dest, err := resolveSlot(snap, destRef)
	if err != nil {
		return Validation{}, err
	}
	sourceType, ok := schedule.ClassifySource(source, snap)
	if !ok {
		return Validation{}, errors.NotFoundf("source references an unknown entity")
	}

	reason := schedule.ValidateDestination(snap, source, sourceType, dest)
	return Validation{
		Valid:   reason == schedule.ReasonNone,
		Reason:  reason,
		Message: reason.Message(),
	}, nil
}

// MissingTeams lists the teams with no placement in the given schedule
// view. For the match schedule, stage and round scope the view.
func (c *Console) MissingTeams(slotType schedule.SlotType, stage models.Stage, round int) ([]models.Team, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	var roundMatches []models.Match
	if slotType == schedule.SlotMatch {
		roundMatches = schedule.RoundMatches(snap, stage, round)
	}
	return schedule.MissingTeams(snap, slotType, roundMatches), nil
}

// Move validates and executes a move from source to dest. A source that
// only exists off-schedule (missing team, rematch copy) leaves the source
// slot untouched.
func (c *Console) Move(ctx context.Context, sourceRef, destRef SlotRef, shouldCopy bool) error {
	snap, source, dest, sourceType, err := c.resolvePair(sourceRef, destRef)
	if err != nil {
		return err
	}
	if reason := schedule.ValidateDestination(snap, source, sourceType, dest); reason != schedule.ReasonNone {
		return errors.Validation(reason.Message())
	}
	if !schedule.AllowedActions(sourceType).Allows(schedule.ActionMove) {
		return errors.Validation("move is not allowed for this source")
	}
	// A rematch re-runs a completed seat: the destination gets the team
	// and the played original stays on the schedule no matter what the
	// caller asked for.
	if sourceType == schedule.SourceRematch {
		shouldCopy = true
	}
	return c.orchestrator.Move(ctx, c.divisionID, source, dest, shouldCopy)
}

// Replace validates and executes a swap of source and dest
func (c *Console) Replace(ctx context.Context, sourceRef, destRef SlotRef) error {
	snap, source, dest, sourceType, err := c.resolvePair(sourceRef, destRef)
	if err != nil {
		return err
	}
	if reason := schedule.ValidateDestination(snap, source, sourceType, dest); reason != schedule.ReasonNone {
		return errors.Validation(reason.Message())
	}
	if !schedule.AllowedActions(sourceType).Allows(schedule.ActionReplace) {
		return errors.Validation("replace is not allowed for this source")
	}
	return c.orchestrator.Replace(ctx, c.divisionID, source, dest)
}

// Clear empties a slot's team assignment
func (c *Console) Clear(ctx context.Context, ref SlotRef) error {
	snap, err := c.Snapshot()
	if err != nil {
		return err
	}
	slot, err := resolveSlot(snap, ref)
	if err != nil {
		return err
	}
	sourceType, ok := schedule.ClassifySource(slot, snap)
	if !ok {
		return errors.NotFoundf("slot references an unknown entity")
	}
	if !schedule.AllowedActions(sourceType).Allows(schedule.ActionClear) {
		return errors.Validation("clear is not allowed for this slot")
	}
	return c.orchestrator.Clear(ctx, c.divisionID, slot)
}

// Assign places a team directly into a slot
func (c *Console) Assign(ctx context.Context, ref SlotRef, teamID *string) error {
	snap, err := c.Snapshot()
	if err != nil {
		return err
	}
	slot, err := resolveSlot(snap, ref)
	if err != nil {
		return err
	}
	if teamID != nil {
		if _, ok := snap.Team(*teamID); !ok {
			return errors.Validationf("team %s is not in this division", *teamID)
		}
	}
	return c.orchestrator.Assign(ctx, c.divisionID, slot, teamID)
}

func (c *Console) resolvePair(sourceRef, destRef SlotRef) (schedule.Snapshot, schedule.Slot, schedule.Slot, schedule.SourceType, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return snap, schedule.Slot{}, schedule.Slot{}, "", err
	}
	source, err := resolveSlot(snap, sourceRef)
	if err != nil {
		return snap, schedule.Slot{}, schedule.Slot{}, "", err
	}
	dest, err := resolveSlot(snap, destRef)
	if err != nil {
		return snap, schedule.Slot{}, schedule.Slot{}, "", err
	}
	sourceType, ok := schedule.ClassifySource(source, snap)
	if !ok {
		return snap, schedule.Slot{}, schedule.Slot{}, "", errors.NotFoundf("source references an unknown entity")
	}
	return snap, source, dest, sourceType, nil
}
