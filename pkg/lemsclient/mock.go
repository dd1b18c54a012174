package lemsclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/schedule"
)

// MockClient is a mock division server client for testing
type MockClient struct {
	mu           sync.Mutex
	baseURL      string
	snapshot     schedule.Snapshot
	divisions    []models.Division
	stream       chan events.Envelope
	fetchErr     error
	subscribeErr error
	mutationErr  error
	calls        []string
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithSnapshot sets the snapshot to return from FetchSnapshot
func WithSnapshot(snap schedule.Snapshot) MockOption {
	return func(m *MockClient) {
		m.snapshot = snap
	}
}

// WithDivisions sets the divisions to return from ListDivisions
func WithDivisions(divisions []models.Division) MockOption {
	return func(m *MockClient) {
		m.divisions = divisions
	}
}

// WithFetchError sets an error to return from FetchSnapshot
func WithFetchError(err error) MockOption {
	return func(m *MockClient) {
		m.fetchErr = err
	}
}

// WithSubscribeError sets an error to return from Subscribe
func WithSubscribeError(err error) MockOption {
	return func(m *MockClient) {
		m.subscribeErr = err
	}
}

// WithMutationError sets an error to return from every mutation call
func WithMutationError(err error) MockOption {
	return func(m *MockClient) {
		m.mutationErr = err
	}
}

// WithStream sets the channel handed out by Subscribe. Tests push
// envelopes into it to simulate server events.
func WithStream(stream chan events.Envelope) MockOption {
	return func(m *MockClient) {
		m.stream = stream
	}
}

// WithBaseURL sets the base URL
func WithBaseURL(url string) MockOption {
	return func(m *MockClient) {
		m.baseURL = url
	}
}

// NewMockClient creates a new mock division server client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		baseURL: "http://mock-server",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Calls returns the mutation calls recorded so far, in order
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockClient) record(format string, args ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mutationErr != nil {
		return m.mutationErr
	}
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
	return nil
}

func teamLabel(teamID *string) string {
	if teamID == nil {
		return "<nil>"
	}
	return *teamID
}

// ListDivisions returns the configured divisions
func (m *MockClient) ListDivisions(ctx context.Context) ([]models.Division, error) {
	return m.divisions, nil
}

// FetchSnapshot returns the configured snapshot
func (m *MockClient) FetchSnapshot(ctx context.Context, divisionID string) (schedule.Snapshot, error) {
	if m.fetchErr != nil {
		return schedule.Snapshot{}, m.fetchErr
	}
	snap := m.snapshot
	snap.DivisionID = divisionID
	return snap, nil
}

// Subscribe returns the configured stream channel
func (m *MockClient) Subscribe(ctx context.Context, divisionID string) (<-chan events.Envelope, error) {
	if m.subscribeErr != nil {
		return nil, m.subscribeErr
	}
	if m.stream == nil {
		m.stream = make(chan events.Envelope)
	}
	return m.stream, nil
}

func (m *MockClient) SetMatchParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error {
	return m.record("set %s/%s/%s=%s", divisionID, matchID, participantID, teamLabel(teamID))
}

func (m *MockClient) SwapMatchTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error {
	return m.record("swap %s/%s %s<->%s", divisionID, matchID, participantA, participantB)
}

func (m *MockClient) SetJudgingSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error {
	return m.record("session %s/%s=%s", divisionID, sessionID, teamLabel(teamID))
}

func (m *MockClient) SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error {
	return m.record("swapsession %s/%s<->%s", divisionID, sessionA, sessionB)
}

func (m *MockClient) SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error {
	return m.record("reschedule %s/%s@%s", divisionID, matchID, scheduledTime.Format(time.RFC3339))
}

func (m *MockClient) SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error {
	return m.record("reschedulesession %s/%s@%s", divisionID, sessionID, scheduledTime.Format(time.RFC3339))
}

func (m *MockClient) LoadMatch(ctx context.Context, divisionID, matchID string) error {
	return m.record("load %s/%s", divisionID, matchID)
}

func (m *MockClient) StartMatch(ctx context.Context, divisionID, matchID string) error {
	return m.record("start %s/%s", divisionID, matchID)
}

func (m *MockClient) AbortMatch(ctx context.Context, divisionID, matchID string) error {
	return m.record("abort %s/%s", divisionID, matchID)
}

func (m *MockClient) CompleteMatch(ctx context.Context, divisionID, matchID string) error {
	return m.record("complete %s/%s", divisionID, matchID)
}

// BaseURL returns the configured base URL
func (m *MockClient) BaseURL() string {
	return m.baseURL
}

// SetBaseURL updates the base URL
func (m *MockClient) SetBaseURL(url string) {
	m.baseURL = url
}

// Ensure both implementations satisfy the interface
var (
	_ Client = (*HTTPClient)(nil)
	_ Client = (*MockClient)(nil)
)
