// pattern: Imperative Shell

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"planeui/internal/logging"
)

// SessionInfo is the wire shape of one live session on /api/sessions.
type SessionInfo struct {
	Viewer   string     `json:"viewer"`
	AgeTicks int64      `json:"age_ticks"`
	Pages    []PageInfo `json:"pages,omitempty"`
}

// PageInfo is one visible page's plane-local placement.
type PageInfo struct {
	Title string  `json:"title"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// Server is the input bridge: it accepts viewer pose/click streams over
// websocket and exposes a small inspection API. It never touches engine
// state itself — every decoded message goes through notify, which the host
// marshals onto the tick goroutine.
type Server struct {
	httpServer *http.Server
	notify     func(any)
	sessions   func() []SessionInfo
	logger     *logging.ScopedLogger
	addr       string
	listener   net.Listener
	events     *eventBroker
}

// Config holds input bridge configuration.
type Config struct {
	Bind string
	Port int
}

// New creates an input bridge server. notify is called with one of the
// events package messages for every decoded viewer input; sessions
// supplies the live session snapshot for the inspection endpoints.
func New(cfg Config, notify func(any), sessions func() []SessionInfo, logProvider logging.LoggerProvider) *Server {
	logger := logProvider.For("web")
	addr := fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port)

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		notify:   notify,
		sessions: sessions,
		logger:   logger,
		addr:     addr,
		events:   newEventBroker(),
	}

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/sessions", s.handleSessions)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/input", s.HandleInput)

	return s
}

// Listen binds the server to its configured address and returns the
// listener. Call Serve() after Listen() to start accepting connections.
// The two-step approach lets callers obtain the actual bound address
// (useful for ephemeral port 0) before the server blocks on Serve().
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("input bridge listen: %w", err)
	}
	s.listener = ln
	return ln, nil
}

// Serve accepts connections on the listener. Blocks until the server
// stops. Must call Listen() first.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("input bridge started", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Start is a convenience that calls Listen() then Serve().
func (s *Server) Start() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Addr returns the address the server is listening on. Only valid after
// Listen() or Start().
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// NotifySessionsChanged wakes SSE subscribers; the host calls this after
// session creation and teardown.
func (s *Server) NotifySessionsChanged() {
	s.events.Notify()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("input bridge shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	list := []SessionInfo{}
	if s.sessions != nil {
		list = s.sessions()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"sessions": list}); err != nil {
		s.logger.Error("failed to encode session list", "error", err)
	}
}
