// Package browser launches the operator's default web browser. The
// keyboard shortcut on both binaries uses it to jump to the division
// server's API.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Commander abstracts process startup so tests can intercept the
// platform command instead of spawning it.
type Commander interface {
	Start(name string, args ...string) error
}

// RealCommander spawns the command without waiting for it to exit.
type RealCommander struct{}

func (RealCommander) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

var defaultCommander Commander = RealCommander{}

// Open points the default browser at url on the current platform.
func Open(url string) error {
	return OpenWithCommander(url, defaultCommander, runtime.GOOS)
}

// OpenWithCommander resolves the opener command for goos and hands the
// url to commander.
func OpenWithCommander(url string, commander Commander, goos string) error {
	switch goos {
	case "linux":
		return commander.Start("xdg-open", url)
	case "darwin":
		return commander.Start("open", url)
	case "windows":
		return commander.Start("rundll32", "url.dll,FileProtocolHandler", url)
	}
	return fmt.Errorf("unsupported platform: %s", goos)
}
