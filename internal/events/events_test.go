package events_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/models"
)

func TestEnvelope_RoundTrip(t *testing.T) {
	start := time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)
	ev := events.MatchStarted{
		Meta:       events.Meta{Version: 7},
		MatchID:    "m1",
		StartTime:  start,
		StartDelta: 120,
	}

	env, err := events.Wrap("d1", ev)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	if env.Type != events.KindMatchStarted {
		t.Errorf("expected type %q, got %q", events.KindMatchStarted, env.Type)
	}
	if env.DivisionID != "d1" {
		t.Errorf("expected division d1, got %q", env.DivisionID)
	}

	decoded, err := env.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, ok := decoded.(events.MatchStarted)
	if !ok {
		t.Fatalf("expected MatchStarted, got %T", decoded)
	}
	if got.MatchID != "m1" || !got.StartTime.Equal(start) || got.StartDelta != 120 {
		t.Errorf("unexpected payload: %+v", got)
	}
	if got.EventVersion() != 7 {
		t.Errorf("expected version 7, got %d", got.EventVersion())
	}
}

func TestEnvelope_DecodeAllKinds(t *testing.T) {
	teamID := "t1"
	evs := []events.Event{
		events.JudgingSessionStarted{SessionID: "s1", StartTime: time.Now().UTC()},
		events.JudgingSessionAborted{SessionID: "s1"},
		events.JudgingSessionCompleted{SessionID: "s1"},
		events.JudgingSessionUpdated{SessionID: "s1", Assignment: &events.SessionAssignment{}},
		events.RubricStatusChanged{RubricID: "r1", Status: models.RubricCompleted},
		events.DeliberationStatusChanged{DeliberationID: "del1", Status: models.StatusInProgress},
		events.MatchLoaded{MatchID: "m1"},
		events.MatchStarted{MatchID: "m1"},
		events.MatchAborted{MatchID: "m1"},
		events.MatchCompleted{MatchID: "m1"},
		events.MatchUpdated{MatchID: "m1", Assignments: []events.Assignment{{ParticipantID: "p1", TeamID: &teamID}}},
		events.TeamRegistered{TeamID: "t1"},
		events.TeamArrived{TeamID: "t1", Arrived: true},
		events.TeamDisqualified{TeamID: "t1"},
	}

	for _, ev := range evs {
		t.Run(string(ev.Kind()), func(t *testing.T) {
			env, err := events.Wrap("d1", ev)
			if err != nil {
				t.Fatalf("Wrap failed: %v", err)
			}
			decoded, err := env.Decode()
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Kind() != ev.Kind() {
				t.Errorf("expected kind %q, got %q", ev.Kind(), decoded.Kind())
			}
		})
	}
}

func TestEnvelope_UnknownKind(t *testing.T) {
	env := events.Envelope{Type: "somethingElse", Payload: json.RawMessage(`{}`)}

	_, err := env.Decode()
	if !errors.Is(err, events.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestEnvelope_MalformedPayload(t *testing.T) {
	tests := []struct {
		name    string
		env     events.Envelope
	}{
		{
			"invalid json",
			events.Envelope{Type: events.KindMatchLoaded, Payload: json.RawMessage(`{not json`)},
		},
		{
			"missing entity id",
			events.Envelope{Type: events.KindMatchLoaded, Payload: json.RawMessage(`{"version":3}`)},
		},
		{
			"wrong field type",
			events.Envelope{Type: events.KindTeamArrived, Payload: json.RawMessage(`{"team_id":"t1","arrived":"yes"}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.env.Decode()
			if !errors.Is(err, events.ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}
