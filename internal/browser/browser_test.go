package browser

import (
	"fmt"
	"strings"
	"testing"
)

type mockCommander struct {
	name string
	args []string
	err  error
}

func (m *mockCommander) Start(name string, args ...string) error {
	m.name = name
	m.args = args
	return m.err
}

func TestOpenWithCommander(t *testing.T) {
	const url = "http://192.168.1.50:8080/api/divisions"
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"linux", "xdg-open", []string{url}},
		{"darwin", "open", []string{url}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
	}
	for _, tc := range tests {
		t.Run(tc.goos, func(t *testing.T) {
			mock := &mockCommander{}
			if err := OpenWithCommander(url, mock, tc.goos); err != nil {
				t.Fatalf("OpenWithCommander: %v", err)
			}
			if mock.name != tc.wantName {
				t.Errorf("command = %q, want %q", mock.name, tc.wantName)
			}
			if len(mock.args) != len(tc.wantArgs) {
				t.Fatalf("args = %v, want %v", mock.args, tc.wantArgs)
			}
			for i := range tc.wantArgs {
				if mock.args[i] != tc.wantArgs[i] {
					t.Errorf("args = %v, want %v", mock.args, tc.wantArgs)
					break
				}
			}
		})
	}
}

func TestOpenWithCommanderUnsupportedPlatform(t *testing.T) {
	mock := &mockCommander{}
	err := OpenWithCommander("http://localhost:8080", mock, "plan9")
	if err == nil {
		t.Fatal("OpenWithCommander accepted an unsupported platform")
	}
	if !strings.Contains(err.Error(), "plan9") {
		t.Errorf("error = %v, want the platform name in it", err)
	}
	if mock.name != "" {
		t.Errorf("command %q was spawned for an unsupported platform", mock.name)
	}
}

func TestOpenWithCommanderStartError(t *testing.T) {
	mock := &mockCommander{err: fmt.Errorf("exec: not found")}
	if err := OpenWithCommander("http://localhost:8080", mock, "linux"); err == nil {
		t.Error("OpenWithCommander swallowed the commander error")
	}
}

func TestOpenUsesDefaultCommander(t *testing.T) {
	orig := defaultCommander
	defer func() { defaultCommander = orig }()

	mock := &mockCommander{}
	defaultCommander = mock

	const url = "http://localhost:8080/api/divisions"
	if err := Open(url); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(mock.args) == 0 || mock.args[len(mock.args)-1] != url {
		t.Errorf("args = %v, want the url as the final argument", mock.args)
	}
}
