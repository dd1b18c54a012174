// Package lemsclient provides a client for a livesched division server.
// It covers the full console surface: snapshot fetch, schedule mutations,
// lifecycle calls and the websocket event stream.
package lemsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tbeaumont/livesched/internal/events"
	"github.com/tbeaumont/livesched/internal/logger"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/schedule"
)

// APIError is an error response from the division server
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client defines the interface for division server operations
type Client interface {
	// ListDivisions retrieves all divisions hosted by the server
	ListDivisions(ctx context.Context) ([]models.Division, error)
	// FetchSnapshot retrieves the complete current schedule state of a division
	FetchSnapshot(ctx context.Context, divisionID string) (schedule.Snapshot, error)
	// Subscribe opens the division's event stream. The channel closes when
	// the connection drops or ctx is cancelled; callers resubscribe.
	Subscribe(ctx context.Context, divisionID string) (<-chan events.Envelope, error)

	// SetMatchParticipantTeam assigns a team (or nil to clear) to a match seat
	SetMatchParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error
	// SwapMatchTeams exchanges the teams of two seats of one match atomically
	SwapMatchTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error
	// SetJudgingSessionTeam assigns a team (or nil to clear) to a judging session
	SetJudgingSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error
	// SwapSessionTeams exchanges the teams of two judging sessions atomically
	SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error
	// SetMatchScheduledTime moves a match to a new schedule position
	SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error
	// SetSessionScheduledTime moves a judging session to a new schedule position
	SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error

	// LoadMatch stages a match at the field
	LoadMatch(ctx context.Context, divisionID, matchID string) error
	// StartMatch starts a staged match
	StartMatch(ctx context.Context, divisionID, matchID string) error
	// AbortMatch aborts a running match
	AbortMatch(ctx context.Context, divisionID, matchID string) error
	// CompleteMatch completes a running match
	CompleteMatch(ctx context.Context, divisionID, matchID string) error

	// BaseURL returns the configured server base URL
	BaseURL() string
	// SetBaseURL updates the server base URL
	SetBaseURL(url string)
}

// HTTPClient is a real HTTP client for a division server
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
	log        logger.Logger
}

// NewHTTPClient creates a new division server client
func NewHTTPClient(baseURL string, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		dialer: websocket.DefaultDialer,
		log:    log,
	}
}

// NewHTTPClientWithHTTPClient creates a client with a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		dialer:     websocket.DefaultDialer,
		log:        log,
	}
}

// BaseURL returns the configured server base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SetBaseURL updates the server base URL
func (c *HTTPClient) SetBaseURL(url string) {
	c.baseURL = strings.TrimSuffix(url, "/")
}

// doRequest executes an HTTP request against the server and decodes the
// JSON response. Non-2xx responses are returned as *APIError.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string, payload, response interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	url := c.baseURL + path
	c.log.Debug("Server request", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debug("Server response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if response != nil {
		if err := json.Unmarshal(raw, response); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// ListDivisions retrieves all divisions hosted by the server
func (c *HTTPClient) ListDivisions(ctx context.Context) ([]models.Division, error) {
	var divisions []models.Division
	if err := c.doRequest(ctx, http.MethodGet, "/api/divisions", nil, &divisions); err != nil {
		return nil, err
	}
	return divisions, nil
}

// FetchSnapshot retrieves the complete current schedule state of a division
func (c *HTTPClient) FetchSnapshot(ctx context.Context, divisionID string) (schedule.Snapshot, error) {
	var snap schedule.Snapshot
	path := "/api/divisions/" + divisionID + "/snapshot"
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return schedule.Snapshot{}, err
	}
	return snap, nil
}

// Subscribe opens the division's websocket event stream. Envelopes arrive
// on the returned channel until the connection drops or ctx is cancelled,
// then the channel closes.
func (c *HTTPClient) Subscribe(ctx context.Context, divisionID string) (<-chan events.Envelope, error) {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/ws/" + divisionID
	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to event stream: %w", err)
	}

	stream := make(chan events.Envelope, 64)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(stream)
		defer conn.Close()
		for {
			var envelope events.Envelope
			if err := conn.ReadJSON(&envelope); err != nil {
				if ctx.Err() == nil {
					c.log.Debug("Event stream closed", "division", divisionID, "error", err)
				}
				return
			}
			select {
			case stream <- envelope:
			case <-ctx.Done():
				return
			}
		}
	}()
	return stream, nil
}

type assignTeamRequest struct {
	TeamID *string `json:"team_id"`
}

type swapParticipantsRequest struct {
	ParticipantA string `json:"participant_a"`
	ParticipantB string `json:"participant_b"`
}

type swapSessionsRequest struct {
	SessionA string `json:"session_a"`
	SessionB string `json:"session_b"`
}

type rescheduleRequest struct {
	ScheduledTime time.Time `json:"scheduled_time"`
}

// SetMatchParticipantTeam assigns a team (or nil to clear) to a match seat
func (c *HTTPClient) SetMatchParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error {
	path := "/api/divisions/" + divisionID + "/matches/" + matchID + "/participants/" + participantID + "/team"
	return c.doRequest(ctx, http.MethodPut, path, assignTeamRequest{TeamID: teamID}, nil)
}

// SwapMatchTeams exchanges the teams of two seats of one match atomically
func (c *HTTPClient) SwapMatchTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error {
	path := "/api/divisions/" + divisionID + "/matches/" + matchID + "/participants/swap"
	return c.doRequest(ctx, http.MethodPost, path, swapParticipantsRequest{ParticipantA: participantA, ParticipantB: participantB}, nil)
}

// SetJudgingSessionTeam assigns a team (or nil to clear) to a judging session
func (c *HTTPClient) SetJudgingSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error {
	path := "/api/divisions/" + divisionID + "/sessions/" + sessionID + "/team"
	return c.doRequest(ctx, http.MethodPut, path, assignTeamRequest{TeamID: teamID}, nil)
}

// SwapSessionTeams exchanges the teams of two judging sessions atomically
func (c *HTTPClient) SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error {
	path := "/api/divisions/" + divisionID + "/sessions/swap"
	return c.doRequest(ctx, http.MethodPost, path, swapSessionsRequest{SessionA: sessionA, SessionB: sessionB}, nil)
}

// SetMatchScheduledTime moves a match to a new schedule position
func (c *HTTPClient) SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error {
	path := "/api/divisions/" + divisionID + "/matches/" + matchID + "/scheduled-time"
	return c.doRequest(ctx, http.MethodPut, path, rescheduleRequest{ScheduledTime: scheduledTime}, nil)
}

// SetSessionScheduledTime moves a judging session to a new schedule position
func (c *HTTPClient) SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error {
	path := "/api/divisions/" + divisionID + "/sessions/" + sessionID + "/scheduled-time"
	return c.doRequest(ctx, http.MethodPut, path, rescheduleRequest{ScheduledTime: scheduledTime}, nil)
}

// LoadMatch stages a match at the field
func (c *HTTPClient) LoadMatch(ctx context.Context, divisionID, matchID string) error {
	return c.doRequest(ctx, http.MethodPost, "/api/divisions/"+divisionID+"/matches/"+matchID+"/load", nil, nil)
}

// StartMatch starts a staged match
func (c *HTTPClient) StartMatch(ctx context.Context, divisionID, matchID string) error {
	return c.doRequest(ctx, http.MethodPost, "/api/divisions/"+divisionID+"/matches/"+matchID+"/start", nil, nil)
}

// AbortMatch aborts a running match
func (c *HTTPClient) AbortMatch(ctx context.Context, divisionID, matchID string) error {
	return c.doRequest(ctx, http.MethodPost, "/api/divisions/"+divisionID+"/matches/"+matchID+"/abort", nil, nil)
}

// CompleteMatch completes a running match
func (c *HTTPClient) CompleteMatch(ctx context.Context, divisionID, matchID string) error {
	return c.doRequest(ctx, http.MethodPost, "/api/divisions/"+divisionID+"/matches/"+matchID+"/complete", nil, nil)
}
