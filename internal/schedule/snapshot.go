// Package schedule holds the live view of a division's competition
// schedule: the snapshot store fed by full refreshes and incremental
// change events, and the classification, validation and edit machinery
// used to move teams around while the event is running.
package schedule

import (
	"sync"

	"github.com/tbeaumont/livesched/internal/models"
)

// Snapshot is the full in-memory representation of a division's current
// schedule state. Snapshots are immutable values: reconciliation derives a
// new snapshot sharing every sub-structure it did not touch, so consumers
// can compare by identity to skip work.
type Snapshot struct {
	DivisionID    string                  `json:"division_id"`
	State         models.DivisionState    `json:"state"`
	Matches       []models.Match          `json:"matches"`
	Sessions      []models.JudgingSession `json:"sessions"`
	Teams         []models.Team           `json:"teams"`
	Rooms         []models.Room           `json:"rooms"`
	Tables        []models.Table          `json:"tables"`
	Deliberations []models.Deliberation   `json:"deliberations,omitempty"`

	// versions holds the per-entity watermark of the last applied event,
	// used to ignore stale deliveries. Keys are "<kind>:<id>".
	versions map[string]uint64
}

// Match returns the match with the given id, if present.
func (s Snapshot) Match(id string) (models.Match, bool) {
	for _, m := range s.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return models.Match{}, false
}

// Session returns the judging session with the given id, if present.
func (s Snapshot) Session(id string) (models.JudgingSession, bool) {
	for _, sess := range s.Sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return models.JudgingSession{}, false
}

// Team returns the team with the given id, if present.
func (s Snapshot) Team(id string) (models.Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

// Table returns the table with the given id, if present.
func (s Snapshot) Table(id string) (models.Table, bool) {
	for _, tbl := range s.Tables {
		if tbl.ID == id {
			return tbl, true
		}
	}
	return models.Table{}, false
}

// Room returns the room with the given id, if present.
func (s Snapshot) Room(id string) (models.Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return models.Room{}, false
}

// LoadedMatchID returns the id of the currently loaded match, or "".
func (s Snapshot) LoadedMatchID() string {
	if s.State.LoadedMatchID == nil {
		return ""
	}
	return *s.State.LoadedMatchID
}

// stale reports whether an event at the given version has already been
// superseded for the entity key. Version zero means the feed carries no
// versioning and every delivery is applied in arrival order.
func (s Snapshot) stale(key string, version uint64) bool {
	if version == 0 {
		return false
	}
	return s.versions[key] >= version
}

// bumped returns a copy of the version watermarks with key set to version.
func (s Snapshot) bumped(key string, version uint64) map[string]uint64 {
	if version == 0 {
		return s.versions
	}
	out := make(map[string]uint64, len(s.versions)+1)
	for k, v := range s.versions {
		out[k] = v
	}
	out[key] = version
	return out
}

// Store holds the last known snapshot per division. It is single-writer:
// only reconciliation and full refreshes replace a snapshot, and every
// replacement installs a complete new value, so readers never observe a
// partially updated schedule.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string]Snapshot)}
}

// Get returns the current snapshot for a division.
func (st *Store) Get(divisionID string) (Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	snap, ok := st.snapshots[divisionID]
	return snap, ok
}

// Replace installs a full snapshot, discarding any previous value and all
// version watermarks. A full refresh always wins over pending patches.
func (st *Store) Replace(snap Snapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.snapshots[snap.DivisionID] = snap
}

// Drop forgets a division's snapshot.
func (st *Store) Drop(divisionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.snapshots, divisionID)
}
