package console_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tbeaumont/livesched/internal/console"
	"github.com/tbeaumont/livesched/internal/handlers"
	"github.com/tbeaumont/livesched/internal/schedule"
	"github.com/tbeaumont/livesched/pkg/lemsclient"
)

func newTestServer(t *testing.T, opts ...lemsclient.MockOption) (*httptest.Server, *lemsclient.MockClient) {
	t.Helper()
	c, client := newConsole(t, opts...)
	srv := httptest.NewServer(console.NewServer(testLogger(), c).Routes())
	t.Cleanup(srv.Close)
	return srv, client
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

// toggleLogger counts how often the router consults the HTTP logging flag.
type toggleLogger struct {
	mu      sync.Mutex
	enabled bool
	checks  int
}

func (l *toggleLogger) IsHTTPLoggingEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checks++
	return l.enabled
}

func (l *toggleLogger) checkCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checks
}

func TestHTTPLoggingToggledPerRequest(t *testing.T) {
	c, _ := newConsole(t)
	log := &toggleLogger{}
	srv := httptest.NewServer(console.NewServer(log, c).Routes())
	t.Cleanup(srv.Close)

	// The flag must be read on every request, not once when the router
	// is built, so the runtime toggle takes effect.
	built := log.checkCount()
	wantStatus(t, doJSON(t, http.MethodGet, srv.URL+"/healthz", ""), http.StatusOK)
	if got := log.checkCount(); got != built+1 {
		t.Fatalf("flag checked %d times after one request, want %d", got, built+1)
	}

	log.mu.Lock()
	log.enabled = true
	log.mu.Unlock()
	wantStatus(t, doJSON(t, http.MethodGet, srv.URL+"/healthz", ""), http.StatusOK)
	if got := log.checkCount(); got != built+2 {
		t.Errorf("flag checked %d times after two requests, want %d", got, built+2)
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/snapshot", "")
	wantStatus(t, resp, http.StatusOK)

	var snap schedule.Snapshot
	decodeBody(t, resp, &snap)
	if snap.DivisionID != "div1" || len(snap.Matches) != 3 {
		t.Errorf("snapshot = %q with %d matches", snap.DivisionID, len(snap.Matches))
	}
}

func TestClassifyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/classify",
		`{"slot":{"kind":"match","match_id":"m1","participant_id":"p1"}}`)
	wantStatus(t, resp, http.StatusOK)

	var c console.Classification
	decodeBody(t, resp, &c)
	if c.SourceType != schedule.SourceReschedule || !c.Selectable || !c.Actions.Replace {
		t.Errorf("classification = %+v", c)
	}
}

func TestAllowedActionsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/allowed-actions",
		`{"slot":{"kind":"match","match_id":"m3","participant_id":"p5"}}`)
	wantStatus(t, resp, http.StatusOK)

	var a schedule.Actions
	decodeBody(t, resp, &a)
	if !a.Move || a.Replace || a.Clear {
		t.Errorf("actions = %+v, want move only", a)
	}
}

func TestValidateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/validate",
		`{"source":{"kind":"match","match_id":"m1","participant_id":"p1"},
		  "dest":{"kind":"session","session_id":"s2"}}`)
	wantStatus(t, resp, http.StatusOK)

	var v console.Validation
	decodeBody(t, resp, &v)
	if v.Valid || v.Reason != schedule.ReasonScheduleMismatch || v.Message == "" {
		t.Errorf("validation = %+v", v)
	}
}

func TestMoveEndpoint(t *testing.T) {
	srv, client := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/move",
		`{"source":{"kind":"match","match_id":"m1","participant_id":"p1"},
		  "dest":{"kind":"match","match_id":"m2","participant_id":"p4"}}`)
	wantStatus(t, resp, http.StatusOK)

	if calls := client.Calls(); len(calls) != 2 {
		t.Errorf("calls = %v, want destination write then source clear", calls)
	}
}

func TestMoveEndpointRejection(t *testing.T) {
	srv, client := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/move",
		`{"source":{"kind":"match","match_id":"m1","participant_id":"p1"},
		  "dest":{"kind":"match","match_id":"m3","participant_id":"p5"}}`)
	wantStatus(t, resp, http.StatusBadRequest)

	var apiErr handlers.APIError
	decodeBody(t, resp, &apiErr)
	if apiErr.Code != handlers.ErrCodeValidation || apiErr.Message == "" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if calls := client.Calls(); len(calls) != 0 {
		t.Errorf("rejected move reached the server: %v", calls)
	}
}

func TestClearEndpoint(t *testing.T) {
	srv, client := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/clear",
		`{"slot":{"kind":"session","session_id":"s1"}}`)
	wantStatus(t, resp, http.StatusOK)

	if calls := client.Calls(); len(calls) != 1 || calls[0] != "session div1/s1=<nil>" {
		t.Errorf("calls = %v", calls)
	}
}

func TestAssignEndpoint(t *testing.T) {
	srv, client := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assign",
		`{"slot":{"kind":"match","match_id":"m2","participant_id":"p4"},"team_id":"t2"}`)
	wantStatus(t, resp, http.StatusOK)

	if calls := client.Calls(); len(calls) != 1 || calls[0] != "set div1/m2/p4=t2" {
		t.Errorf("calls = %v", calls)
	}
}

func TestMissingTeamsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/missing-teams?type=session", "")
	wantStatus(t, resp, http.StatusOK)

	var teams []struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &teams)
	if len(teams) != 2 {
		t.Errorf("missing teams = %+v, want 2", teams)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/missing-teams?type=banana", "")
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestUpstreamErrorPassesThrough(t *testing.T) {
	upstream := &lemsclient.APIError{Status: 409, Code: "CONFLICT", Message: "match m2 is loaded at the field"}
	srv, _ := newTestServer(t, lemsclient.WithMutationError(upstream))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/assign",
		`{"slot":{"kind":"match","match_id":"m2","participant_id":"p4"},"team_id":"t2"}`)
	wantStatus(t, resp, http.StatusConflict)

	var apiErr handlers.APIError
	decodeBody(t, resp, &apiErr)
	if apiErr.Code != "CONFLICT" || apiErr.Message != upstream.Message {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/classify", `{"slot"`)
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", "")
	wantStatus(t, resp, http.StatusOK)

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["division"] != "div1" {
		t.Errorf("healthz = %v", body)
	}
}
