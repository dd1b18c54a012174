// Package keyboard provides single-key console shortcuts for the server
// binaries. The terminal is switched into raw mode while listening, so
// all output inside the loop uses \r\n line endings.
package keyboard

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tbeaumont/livesched/internal/browser"
	"github.com/tbeaumont/livesched/internal/logger"
)

// ANSI escape codes
const (
	Reset  = "\033[0m"
	Yellow = "\033[33m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// Shortcuts describes the key bindings for the help text
type Shortcuts struct {
	// OpenLabel names what the 'o' key opens, e.g. "console" or
	// "division list". Empty disables the binding.
	OpenLabel string
	OpenURL   string
}

// PrintHelp displays the available keyboard shortcuts
func (s Shortcuts) PrintHelp() {
	fmt.Printf("\r\n%s%s  Keyboard Shortcuts:%s\r\n", Bold, Green, Reset)
	if s.OpenLabel != "" {
		fmt.Printf("    %so%s      - Open %s in browser\r\n", Cyan, Reset, s.OpenLabel)
	}
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\r\n", Cyan, Reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug, info, warn, error)\r\n", Cyan, Reset)
	fmt.Printf("    %sq%s      - Quit server\r\n", Cyan, Reset)
	fmt.Printf("    %s?%s      - Show this help\r\n\r\n", Cyan, Reset)
}

// Listen reads single keypresses until 'q' or Ctrl+C, then restores the
// terminal and calls quit. It returns immediately when stdin is not a
// terminal.
func Listen(appLog *logger.SlogLogger, shortcuts Shortcuts, quit func()) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	restore := func() { term.Restore(fd, oldState) }
	defer restore()

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}

		switch strings.ToLower(string(buf[0])) {
		case "o":
			if shortcuts.OpenURL == "" {
				continue
			}
			fmt.Printf("%sOpening %s in browser...%s\r\n", Cyan, shortcuts.OpenLabel, Reset)
			if err := browser.Open(shortcuts.OpenURL); err != nil {
				fmt.Printf("%sError opening browser: %v%s\r\n", Red, err, Reset)
			}
		case "h":
			if appLog.IsHTTPLoggingEnabled() {
				appLog.DisableHTTPLogging()
				fmt.Printf("%sHTTP logging disabled%s\r\n", Yellow, Reset)
			} else {
				appLog.EnableHTTPLogging()
				fmt.Printf("%sHTTP logging enabled%s\r\n", Green, Reset)
			}
		case "l":
			cycleLogLevel(appLog)
		case "?":
			shortcuts.PrintHelp()
		case "q", "\x03":
			fmt.Printf("%sShutting down server...%s\r\n", Yellow, Reset)
			restore()
			quit()
			return
		}
	}
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) {
	var next string
	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	default:
		next = "debug"
	}
	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Printf("%sLog level: %s%s%s\r\n", Green, Yellow, next, Reset)
}
