package schedule

import (
	"context"
	"time"

	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/logger"
)

// Fetcher retrieves a full division snapshot from the upstream system.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, divisionID string) (Snapshot, error)
}

// Subscriber opens a stream of change events for a division. The
// returned channel closes when the stream drops; the updater refetches
// and resubscribes.
type Subscriber interface {
	Subscribe(ctx context.Context, divisionID string) (<-chan events.Envelope, error)
}

// Updater keeps a Store current for one division: a full refetch on a
// timer plus incremental reconciliation of pushed change events in
// between. Events that fail to decode are dropped.
type Updater struct {
	store      *Store
	fetcher    Fetcher
	subscriber Subscriber
	divisionID string
	interval   time.Duration
	log        logger.Logger
}

func NewUpdater(store *Store, fetcher Fetcher, subscriber Subscriber, divisionID string, interval time.Duration, log logger.Logger) *Updater {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Updater{
		store:      store,
		fetcher:    fetcher,
		subscriber: subscriber,
		divisionID: divisionID,
		interval:   interval,
		log:        log,
	}
}

// Run blocks until ctx is cancelled. The initial fetch must succeed;
// afterwards fetch and subscribe failures are logged and retried.
func (u *Updater) Run(ctx context.Context) error {
	if err := u.refetch(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	var stream <-chan events.Envelope
	for {
		if stream == nil {
			var err error
			stream, err = u.subscriber.Subscribe(ctx, u.divisionID)
			if err != nil {
				u.log.Warn("subscribe failed, retrying", "division", u.divisionID, "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(5 * time.Second):
				}
				continue
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := u.refetch(ctx); err != nil {
				u.log.Warn("snapshot refetch failed", "division", u.divisionID, "error", err)
			}
		case env, ok := <-stream:
			if !ok {
				u.log.Info("event stream closed, resubscribing", "division", u.divisionID)
				stream = nil
				if err := u.refetch(ctx); err != nil {
					u.log.Warn("snapshot refetch failed", "division", u.divisionID, "error", err)
				}
				continue
			}
			ev, err := env.Decode()
			if err != nil {
				u.log.Debug("dropping undecodable event", "division", u.divisionID, "type", env.Type, "error", err)
				continue
			}
			u.store.Apply(u.divisionID, ev)
		}
	}
}

func (u *Updater) refetch(ctx context.Context) error {
	snap, err := u.fetcher.FetchSnapshot(ctx, u.divisionID)
	if err != nil {
		return err
	}
	snap.DivisionID = u.divisionID
	u.store.Replace(snap)
	return nil
}
