package console

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tbeaumont/livesched/internal/handlers"
	"github.com/tbeaumont/livesched/internal/models"
	"github.com/tbeaumont/livesched/internal/schedule"
	"github.com/tbeaumont/livesched/pkg/lemsclient"
)

// Server exposes the console engine over HTTP to the operator UI
type Server struct {
	log     httpLogger
	console *Console
}

type httpLogger interface {
	IsHTTPLoggingEnabled() bool
}

// NewServer creates the HTTP surface for a console engine
func NewServer(log httpLogger, c *Console) *Server {
	return &Server{log: log, console: c}
}

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (s *Server) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.log != nil && s.log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Routes builds the console API router
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/missing-teams", s.handleMissingTeams)
		r.Post("/classify", s.handleClassify)
		r.Post("/validate", s.handleValidate)
		r.Post("/allowed-actions", s.handleAllowedActions)
		r.Post("/move", s.handleMove)
		r.Post("/replace", s.handleReplace)
		r.Post("/clear", s.handleClear)
		r.Post("/assign", s.handleAssign)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"division": s.console.DivisionID(),
		})
	})

	return r
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.console.Snapshot()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) handleMissingTeams(w http.ResponseWriter, r *http.Request) {
	slotType := schedule.SlotType(r.URL.Query().Get("type"))
	if slotType != schedule.SlotMatch && slotType != schedule.SlotSession {
		respondError(w, handlers.BadRequest("type must be match or session"))
		return
	}
	stage := models.Stage(r.URL.Query().Get("stage"))
	round := 0
	if raw := r.URL.Query().Get("round"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, handlers.BadRequest("round must be a number"))
			return
		}
		round = n
	}
	teams, err := s.console.MissingTeams(slotType, stage, round)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

type classifyRequest struct {
	Slot SlotRef `json:"slot"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	c, err := s.console.Classify(req.Slot)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleAllowedActions(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	c, err := s.console.Classify(req.Slot)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c.Actions)
}

type pairRequest struct {
	Source SlotRef `json:"source"`
	Dest   SlotRef `json:"dest"`
	Copy   bool    `json:"copy,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	v, err := s.console.Validate(req.Source, req.Dest)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.console.Move(r.Context(), req.Source, req.Dest, req.Copy); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "moved")
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.console.Replace(r.Context(), req.Source, req.Dest); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "replaced")
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.console.Clear(r.Context(), req.Slot); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "cleared")
}

type assignRequest struct {
	Slot   SlotRef `json:"slot"`
	TeamID *string `json:"team_id"`
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.console.Assign(r.Context(), req.Slot, req.TeamID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "assigned")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// respondError writes the API error shape shared with the division
// server. Upstream rejections from the division server pass through
// with their original status and code.
func respondError(w http.ResponseWriter, err error) {
	var upstream *lemsclient.APIError
	if errors.As(err, &upstream) {
		respondJSON(w, upstream.Status, handlers.NewAPIError(upstream.Status, upstream.Code, upstream.Message))
		return
	}
	apiErr := handlers.ToAPIError(err)
	respondJSON(w, apiErr.Status, apiErr)
}

func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return handlers.BadRequest("Request body is empty")
		}
		return handlers.BadRequest("Invalid JSON in request body")
	}
	return nil
}
