// Package http exposes a session.Manager over HTTP with a chi router.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/compact"
	"github.com/aretw0/compact/internal/logging"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/manifest"
	"github.com/aretw0/compact/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the sessions of a Manager.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts GET /metrics serving the metrics of g.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// DispatchResponse is the body returned by POST /sessions/{id}/dispatch.
type DispatchResponse struct {
	Action domain.Action `json:"action"`
	State  any           `json:"state"`
}

// NewHandler creates a new HTTP handler for the sessions of m.
// Every change applied through m is also streamed to the SSE subscribers of
// its session.
func NewHandler(m *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		Sessions: m,
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams.logger = server.logger
	m.Subscribe(server.broadcast)

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/types", server.GetTypes)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.ListSessions)
		r.Post("/", server.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/state", server.GetState)
			r.Post("/dispatch", server.Dispatch)
			r.Post("/reset", server.Reset)
			r.Delete("/", server.DeleteSession)
			r.Get("/events", server.SubscribeEvents)
		})
	})
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "compact-http",
		"version": strings.TrimSpace(compact.Version),
	})
}

// GetTypes handles the GET /types request.
func (s *Server) GetTypes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.Reducer().Types())
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "List failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// SessionResponse is the body returned by POST /sessions.
type SessionResponse struct {
	ID    string `json:"id"`
	State any    `json:"state"`
}

// CreateSession handles the POST /sessions request.
// It starts a session under a fresh identifier from the default state.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.NewV7()
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Create failed", err)
		return
	}
	state, err := s.Sessions.State(r.Context(), id.String())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Create failed", err)
		return
	}
	w.Header().Set("Location", "/sessions/"+id.String())
	s.writeJSON(w, http.StatusCreated, SessionResponse{ID: id.String(), State: state})
}

// GetState handles the GET /sessions/{id}/state request.
// Unknown sessions are started from the default state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.Sessions.State(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "State failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// Dispatch handles the POST /sessions/{id}/dispatch request.
// The body is a script step: either a complete action or a path through the
// action-creator tree.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	var step manifest.Step
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	action, err := step.Action(s.Sessions.Reducer().Actions())
	if err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid action", err)
		return
	}

	state, err := s.Sessions.Dispatch(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Dispatch failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, DispatchResponse{Action: action, State: state})
}

// Reset handles the POST /sessions/{id}/reset request.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := s.Sessions.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "Reset failed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		s.fail(w, http.StatusNotFound, "Delete failed", err)
	case err != nil:
		s.fail(w, http.StatusInternalServerError, "Delete failed", err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, "error", err)
	} else {
		s.logger.Warn(msg, "error", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}
