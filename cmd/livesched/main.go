package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tbeaumont/livesched/internal/app"
	"github.com/tbeaumont/livesched/internal/keyboard"
	"github.com/tbeaumont/livesched/internal/logger"
)

var version = "dev"

// envOr returns the environment value for key, or fallback when unset.
// A .env file in the working directory is loaded before flags parse.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	godotenv.Load()

	port := flag.Int("port", envIntOr("LIVESCHED_PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envOr("LIVESCHED_DB", "livesched.db"), "SQLite database path")
	consoleURL := flag.String("console-url", envOr("LIVESCHED_CONSOLE_URL", ""), "Console base URL encoded into division QR codes")
	logLevel := flag.String("loglevel", envOr("LIVESCHED_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `livesched - Live Event Schedule Server

Usage:
  livesched [options]

Options:
  -port int         HTTP server port (default 8080)
  -db string        SQLite database path (default "livesched.db")
  -console-url str  Console base URL encoded into division QR codes
  -loglevel str     Log level: debug, info, warn, error (default "info")
  -nokeyboard       Disable keyboard shortcuts
  -version          Show version and exit
  -help             Show this help message

Environment (read from .env when present, flags take precedence):
  LIVESCHED_PORT, LIVESCHED_DB, LIVESCHED_CONSOLE_URL, LIVESCHED_LOG_LEVEL

Keyboard Shortcuts (when enabled):
  h                 Toggle HTTP request logging
  l                 Cycle log level (debug, info, warn, error)
  q                 Quit server
  ?                 Show keyboard help

Examples:
  livesched                          # Run on port 8080 with livesched.db
  livesched -port 80 -db event.db    # Production example
  livesched -console-url http://scoring.local:9090

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("livesched %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	a, err := app.New(appLog, *dbPath, *consoleURL)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !*noKeyboard {
		shortcuts := keyboard.Shortcuts{}
		shortcuts.PrintHelp()
		go keyboard.Listen(appLog, shortcuts, cancel)
	}

	addr := fmt.Sprintf(":%d", *port)
	if err := a.Run(ctx, addr); err != nil {
		log.Fatal(err)
	}
}
