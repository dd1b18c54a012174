package services_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	apperrors "github.com/tbeaumont/livesched/internal/errors"
	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, slog.LevelError)
}

type captured struct {
	division string
	event    events.Event
}

// mockBroadcaster records every event handed to it
type mockBroadcaster struct {
	mu     sync.Mutex
	events []captured
}

func (b *mockBroadcaster) BroadcastEvent(divisionID string, ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, captured{division: divisionID, event: ev})
}

func (b *mockBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (b *mockBroadcaster) last(t *testing.T) captured {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		t.Fatal("no events broadcast")
	}
	return b.events[len(b.events)-1]
}

func wantKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	var ae *apperrors.Error
	if !errors.As(err, &ae) {
		t.Fatalf("err = %v, want *errors.Error", err)
	}
	if ae.Kind != kind {
		t.Fatalf("err kind = %v, want %v (%v)", ae.Kind, kind, err)
	}
}
