package events

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind reports an envelope whose type is not a known event kind.
var ErrUnknownKind = errors.New("unknown event kind")

// ErrMalformed reports an envelope whose payload cannot be decoded or is
// missing a required field. Consumers drop such events silently.
var ErrMalformed = errors.New("malformed event")

// Envelope is the wire form of a change event.
type Envelope struct {
	Type       Kind            `json:"type"`
	DivisionID string          `json:"division_id"`
	Payload    json.RawMessage `json:"payload"`
}

// Wrap encodes an event into an envelope for the given division.
func Wrap(divisionID string, ev Event) (Envelope, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", ev.Kind(), err)
	}
	return Envelope{Type: ev.Kind(), DivisionID: divisionID, Payload: payload}, nil
}

// Decode parses the envelope payload into its typed event. It returns
// ErrUnknownKind for unrecognized types and ErrMalformed for payloads that
// fail to parse or lack their target entity id.
func (e Envelope) Decode() (Event, error) {
	var ev Event
	switch e.Type {
	case KindJudgingSessionStarted:
		ev = &JudgingSessionStarted{}
	case KindJudgingSessionAborted:
		ev = &JudgingSessionAborted{}
	case KindJudgingSessionCompleted:
		ev = &JudgingSessionCompleted{}
	case KindJudgingSessionUpdated:
		ev = &JudgingSessionUpdated{}
	case KindRubricStatusChanged:
		ev = &RubricStatusChanged{}
	case KindDeliberationStatusChanged:
		ev = &DeliberationStatusChanged{}
	case KindMatchLoaded:
		ev = &MatchLoaded{}
	case KindMatchStarted:
		ev = &MatchStarted{}
	case KindMatchAborted:
		ev = &MatchAborted{}
	case KindMatchCompleted:
		ev = &MatchCompleted{}
	case KindMatchUpdated:
		ev = &MatchUpdated{}
	case KindTeamRegistered:
		ev = &TeamRegistered{}
	case KindTeamArrived:
		ev = &TeamArrived{}
	case KindTeamDisqualified:
		ev = &TeamDisqualified{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, e.Type)
	}

	if err := json.Unmarshal(e.Payload, ev); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, e.Type, err)
	}
	if entityID(ev) == "" {
		return nil, fmt.Errorf("%w: %s: missing entity id", ErrMalformed, e.Type)
	}
	return deref(ev), nil
}

// entityID returns the id of the entity an event targets.
func entityID(ev Event) string {
	switch e := ev.(type) {
	case *JudgingSessionStarted:
		return e.SessionID
	case *JudgingSessionAborted:
		return e.SessionID
	case *JudgingSessionCompleted:
		return e.SessionID
	case *JudgingSessionUpdated:
		return e.SessionID
	case *RubricStatusChanged:
		return e.RubricID
	case *DeliberationStatusChanged:
		return e.DeliberationID
	case *MatchLoaded:
		return e.MatchID
	case *MatchStarted:
		return e.MatchID
	case *MatchAborted:
		return e.MatchID
	case *MatchCompleted:
		return e.MatchID
	case *MatchUpdated:
		return e.MatchID
	case *TeamRegistered:
		return e.TeamID
	case *TeamArrived:
		return e.TeamID
	case *TeamDisqualified:
		return e.TeamID
	}
	return ""
}

// deref returns the value form of a decoded event so consumers can switch
// on concrete types without pointer variants.
func deref(ev Event) Event {
	switch e := ev.(type) {
	case *JudgingSessionStarted:
		return *e
	case *JudgingSessionAborted:
		return *e
	case *JudgingSessionCompleted:
		return *e
	case *JudgingSessionUpdated:
		return *e
	case *RubricStatusChanged:
		return *e
	case *DeliberationStatusChanged:
		return *e
	case *MatchLoaded:
		return *e
	case *MatchStarted:
		return *e
	case *MatchAborted:
		return *e
	case *MatchCompleted:
		return *e
	case *MatchUpdated:
		return *e
	case *TeamRegistered:
		return *e
	case *TeamArrived:
		return *e
	case *TeamDisqualified:
		return *e
	}
	return ev
}
