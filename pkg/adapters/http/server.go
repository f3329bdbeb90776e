package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/cardmenu/internal/input"
	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/internal/presentation/graph"
	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Server exposes the sessions of a Manager over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	copy     *menu.Copy
	metrics  http.Handler
	logger   *slog.Logger
	maxInput int
}

// Option configures the Server.
type Option func(*Server)

// WithCopy lets the page route draw menu screens, cards included.
func WithCopy(c menu.Copy) Option {
	return func(s *Server) {
		s.copy = &c
	}
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize limits the length of dispatched action names in bytes.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInput = n
	}
}

// DispatchRequest is the body of POST /sessions/{id}/dispatch.
type DispatchRequest struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// SessionResponse describes a session and the handlers bound to its mode.
type SessionResponse struct {
	ID          string      `json:"id"`
	Mode        domain.Mode `json:"mode"`
	Data        any         `json:"data"`
	Actions     []string    `json:"actions"`
	Transitions []string    `json:"transitions"`
}

// NewServer creates a Server for mgr.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: mgr,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for the sessions of mgr.
func NewHandler(mgr *session.Manager, opts ...Option) http.Handler {
	return NewServer(mgr, opts...).Routes()
}

// Routes returns the router of the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/graph", s.GetGraph)
	r.Get("/modes", s.GetModes)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/dispatch", s.Dispatch)
			r.Get("/page", s.GetPage)
			r.Get("/events", s.SubscribeEvents)
		})
	})
	return r
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.fail(w, "Create session", err)
		return
	}

	var resp SessionResponse
	err = s.Sessions.Do(r.Context(), id, func(b *binder.Binder) error {
		resp = describe(id, b)
		return nil
	})
	if err != nil {
		s.fail(w, "Create session", err)
		return
	}
	s.logger.Info("Session created", "session_id", id)
	writeJSON(w, http.StatusCreated, resp, s.logger)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	infos := s.Sessions.List()
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids}, s.logger)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var resp SessionResponse
	err := s.Sessions.Do(r.Context(), id, func(b *binder.Binder) error {
		resp = describe(id, b)
		return nil
	})
	if err != nil {
		s.fail(w, "Get session", err)
		return
	}
	writeJSON(w, http.StatusOK, resp, s.logger)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "Delete session", err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// Dispatch handles POST /sessions/{id}/dispatch by calling the handler
// bound to the requested type in the current mode.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Dispatch: Invalid request body", "error", err)
		return
	}
	if body.Type == "" {
		http.Error(w, "Invalid request body: type is required", http.StatusBadRequest)
		return
	}
	name, err := input.Name(body.Type, s.maxInput)
	if err != nil {
		s.fail(w, "Dispatch", err)
		return
	}
	body.Type = name

	var resp SessionResponse
	err = s.Sessions.Do(r.Context(), id, func(b *binder.Binder) error {
		h, ok := lookup(b, body.Type)
		if !ok {
			return &domain.UnhandledActionError{Mode: b.State().Mode, ActionType: body.Type}
		}

		var err error
		if body.Payload == nil {
			err = h()
		} else {
			err = h(body.Payload)
		}
		if err != nil {
			return err
		}
		resp = describe(id, b)
		return nil
	})
	if err != nil {
		s.fail(w, "Dispatch", err)
		return
	}

	if msg, err := json.Marshal(resp); err == nil {
		s.Streams.Broadcast(id, string(msg))
	}
	writeJSON(w, http.StatusOK, resp, s.logger)
}

// GetModes handles GET /modes, outlining every mode of the machine.
func (s *Server) GetModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sessions.Machine().Config().Summary(), s.logger)
}

// GetGraph handles GET /graph. The optional "session" query parameter
// highlights the current mode of that session.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	cfg := s.Sessions.Machine().Config()

	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("session"); id != "" {
		err := s.Sessions.Do(r.Context(), id, func(b *binder.Binder) error {
			overlay = &graph.GraphOverlay{CurrentMode: b.State().Mode}
			return nil
		})
		if err != nil {
			s.fail(w, "Graph", err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(cfg, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE). Every successful
// dispatch on the session is pushed as a SessionResponse.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	err := s.Sessions.Do(r.Context(), id, func(*binder.Binder) error { return nil })
	if err != nil {
		s.fail(w, "Subscribe", err)
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func lookup(b *binder.Binder, name string) (binder.Handler, bool) {
	actions, transitions := b.Handlers()
	if h, ok := actions[name]; ok {
		return h, true
	}
	h, ok := transitions[name]
	return h, ok
}

func describe(id string, b *binder.Binder) SessionResponse {
	view := b.Snapshot()
	return SessionResponse{
		ID:          id,
		Mode:        view.Mode,
		Data:        view.Data,
		Actions:     view.Actions.Names(),
		Transitions: view.Transitions.Names(),
	}
}

// StatusFor maps a dispatch error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnhandledAction):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Debug(op+" rejected", "error", err, "status", status)
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), status)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

func modeClass(mode domain.Mode) string {
	return "page--" + strings.ReplaceAll(strings.ToLower(string(mode)), "_", "-")
}
