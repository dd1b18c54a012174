package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger) // Custom conditional HTTP logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// WebSocket event stream, one subscription per division
	r.Get("/ws/{divisionID}", h.handleWebSocket)

	r.Get("/api/divisions", h.handleListDivisions)
	r.Route("/api/divisions/{divisionID}", func(r chi.Router) {
		r.Get("/snapshot", h.handleGetSnapshot)
		r.Get("/qr", h.handleDivisionQR)

		// Schedule edits
		r.Put("/matches/{matchID}/participants/{participantID}/team", h.handleSetParticipantTeam)
		r.Post("/matches/{matchID}/participants/swap", h.handleSwapMatchTeams)
		r.Put("/matches/{matchID}/scheduled-time", h.handleSetMatchScheduledTime)
		r.Put("/sessions/{sessionID}/team", h.handleSetSessionTeam)
		r.Post("/sessions/swap", h.handleSwapSessionTeams)
		r.Put("/sessions/{sessionID}/scheduled-time", h.handleSetSessionScheduledTime)

		// Field lifecycle
		r.Post("/matches/{matchID}/load", h.handleLoadMatch)
		r.Post("/matches/{matchID}/start", h.handleStartMatch)
		r.Post("/matches/{matchID}/abort", h.handleAbortMatch)
		r.Post("/matches/{matchID}/complete", h.handleCompleteMatch)

		// Judging
		r.Post("/sessions/{sessionID}/start", h.handleStartSession)
		r.Post("/sessions/{sessionID}/abort", h.handleAbortSession)
		r.Post("/sessions/{sessionID}/complete", h.handleCompleteSession)
		r.Put("/rubrics/{rubricID}/status", h.handleSetRubricStatus)
		r.Put("/deliberations/{deliberationID}/status", h.handleSetDeliberationStatus)

		// Teams
		r.Post("/teams/{teamID}/register", h.handleRegisterTeam)
		r.Put("/teams/{teamID}/arrival", h.handleSetTeamArrival)
		r.Post("/teams/{teamID}/disqualify", h.handleDisqualifyTeam)
	})

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondOK(w, map[string]string{"status": "ok"})
	})

	return r
}
