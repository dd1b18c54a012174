package handlers

import (
	"github.com/tbeaumont/livesched/internal/services"
	"github.com/tbeaumont/livesched/internal/websocket"
)

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Division services.DivisionServicer
	Schedule services.ScheduleServicer
	Field    services.FieldServicer
	Judging  services.JudgingServicer
	Team     services.TeamServicer
	Hub      *websocket.Hub
	Log      HTTPLogger

	// consoleBaseURL is the externally reachable URL encoded into division
	// QR codes, e.g. http://scoring.local:8080
	consoleBaseURL string
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies
func New(
	division services.DivisionServicer,
	schedule services.ScheduleServicer,
	field services.FieldServicer,
	judging services.JudgingServicer,
	team services.TeamServicer,
	hub *websocket.Hub,
	log HTTPLogger,
	consoleBaseURL string,
) *Handlers {
	return &Handlers{
		Division:       division,
		Schedule:       schedule,
		Field:          field,
		Judging:        judging,
		Team:           team,
		Hub:            hub,
		Log:            log,
		consoleBaseURL: consoleBaseURL,
	}
}
