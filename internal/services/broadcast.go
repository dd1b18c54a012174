package services

import (
	"context"

	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/logger"
)

// Broadcaster defines the interface for pushing change events to clients.
// The websocket hub implements it; services call it after every persisted
// mutation.
type Broadcaster interface {
	BroadcastEvent(divisionID string, ev events.Event)
}

// NopBroadcaster discards events. Used when no hub is wired, e.g. in tests.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastEvent(string, events.Event) {}

// versionSource hands out division-scoped event sequence numbers
type versionSource interface {
	NextEventVersion(ctx context.Context, divisionID string) (uint64, error)
}

// emitEvent stamps the next event version onto a freshly built event and
// broadcasts it. A failure to take a version is logged but does not fail
// the already-persisted mutation; the event goes out unversioned and the
// periodic full refetch reconverges consumers.
func emitEvent(ctx context.Context, log logger.Logger, repo versionSource, b Broadcaster, divisionID string, build func(version uint64) events.Event) {
	version, err := repo.NextEventVersion(ctx, divisionID)
	if err != nil {
		log.Warn("Event version unavailable, broadcasting unversioned", "division", divisionID, "error", err)
		version = 0
	}
	b.BroadcastEvent(divisionID, build(version))
}
