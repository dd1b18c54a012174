package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/tbeaumont/livesched/internal/console"
	"github.com/tbeaumont/livesched/internal/keyboard"
	"github.com/tbeaumont/livesched/internal/logger"
	"github.com/tbeaumont/livesched/pkg/lemsclient"
)

var version = "dev"

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

// resolveDivision picks the division to serve. An explicit id wins; with
// a single division on the server it is selected automatically.
func resolveDivision(ctx context.Context, client lemsclient.Client, divisionID string) (string, error) {
	if divisionID != "" {
		return divisionID, nil
	}
	divisions, err := client.ListDivisions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list divisions: %w", err)
	}
	if len(divisions) == 1 {
		return divisions[0].ID, nil
	}
	if len(divisions) == 0 {
		return "", fmt.Errorf("server has no divisions")
	}
	fmt.Fprintln(os.Stderr, "Multiple divisions available, pick one with -division:")
	for _, d := range divisions {
		fmt.Fprintf(os.Stderr, "  %s  %s\n", d.ID, d.Name)
	}
	return "", fmt.Errorf("division not specified")
}

func main() {
	godotenv.Load()

	port := flag.Int("port", envIntOr("SCHEDCONSOLE_PORT", 9090), "HTTP server port")
	serverURL := flag.String("server", envOr("SCHEDCONSOLE_SERVER", "http://localhost:8080"), "Division server base URL")
	divisionID := flag.String("division", envOr("SCHEDCONSOLE_DIVISION", ""), "Division id (auto-selected when the server has one)")
	refreshSec := flag.Int("refresh", envIntOr("SCHEDCONSOLE_REFRESH", 30), "Full snapshot refresh interval in seconds")
	logLevel := flag.String("loglevel", envOr("SCHEDCONSOLE_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `schedconsole - Schedule Edit Console

Usage:
  schedconsole [options]

Options:
  -port int       HTTP server port (default 9090)
  -server str     Division server base URL (default "http://localhost:8080")
  -division str   Division id (auto-selected when the server has one)
  -refresh int    Full snapshot refresh interval in seconds (default 30)
  -loglevel str   Log level: debug, info, warn, error (default "info")
  -nokeyboard     Disable keyboard shortcuts
  -version        Show version and exit
  -help           Show this help message

Environment (read from .env when present, flags take precedence):
  SCHEDCONSOLE_PORT, SCHEDCONSOLE_SERVER, SCHEDCONSOLE_DIVISION,
  SCHEDCONSOLE_REFRESH, SCHEDCONSOLE_LOG_LEVEL

Examples:
  schedconsole                                  # Use the local server
  schedconsole -server http://field.local:8080 -division div1

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("schedconsole %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))
	client := lemsclient.NewHTTPClient(*serverURL, appLog)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	division, err := resolveDivision(ctx, client, *divisionID)
	if err != nil {
		log.Fatal(err)
	}

	c := console.New(appLog, client, division, time.Duration(*refreshSec)*time.Second)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: console.NewServer(appLog, c).Routes(),
	}

	appLog.Info("Console starting", "division", division, "server", *serverURL, "addr", srv.Addr)

	if !*noKeyboard {
		shortcuts := keyboard.Shortcuts{
			OpenLabel: "division server",
			OpenURL:   *serverURL + "/api/divisions",
		}
		shortcuts.PrintHelp()
		go keyboard.Listen(appLog, shortcuts, cancel)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.Run(gctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
