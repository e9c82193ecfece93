package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second

	// Maximum request body accepted by the HTTP endpoints
	maxBodySize = 8192
)

// Options configures a Server
type Options struct {
	Addr        string
	IdleTimeout time.Duration
	// Clock drives websocket idle timeouts; nil uses the real clock.
	Clock quartz.Clock
	// Registry receives the service metrics; nil creates a private registry.
	Registry *prometheus.Registry
}

// Server exposes game scoring over HTTP and WebSocket
type Server struct {
	addr        string
	idleTimeout time.Duration
	clock       quartz.Clock
	upgrader    websocket.Upgrader
	registry    *prometheus.Registry
	metrics     *Metrics
	scoring     *ScoringService
	logger      *log.Logger

	mu          sync.Mutex
	connections map[*Connection]struct{}
}

// NewServer creates a new scoring server
func NewServer(opts Options, logger *log.Logger) *Server {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	metrics := NewMetrics(opts.Registry)

	return &Server{
		addr:        opts.Addr,
		idleTimeout: opts.IdleTimeout,
		clock:       opts.Clock,
		upgrader: websocket.Upgrader{
			// Scoring is stateless and unauthenticated, so any origin may connect.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		registry:    opts.Registry,
		metrics:     metrics,
		scoring:     NewScoringService(logger, metrics),
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]struct{}),
	}
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/score", s.handleScore)
	r.Post("/validate", s.handleValidate)
	r.Get("/ws", s.handleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting scoring server", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", s.addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down scoring server")
		s.closeConnections()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ConnectionCount returns the number of open websocket connections
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

func (s *Server) register(c *Connection) {
	s.mu.Lock()
	s.connections[c] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()

	s.metrics.connections.Inc()
	s.logger.Info("Client connected", "total", total)
}

func (s *Server) unregister(c *Connection) {
	s.mu.Lock()
	_, ok := s.connections[c]
	delete(s.connections, c)
	total := len(s.connections)
	s.mu.Unlock()

	if ok {
		s.metrics.connections.Dec()
		s.logger.Info("Client disconnected", "total", total)
	}
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.Close() // Ignore close errors during shutdown
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.scoring, s.clock, s.idleTimeout, s.logger)
	s.register(client)

	go func() {
		defer s.unregister(client)
		client.Serve()
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	s.handleGame(w, r, func(data GameData) (any, error) {
		return s.scoring.Score(data)
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	s.handleGame(w, r, func(data GameData) (any, error) {
		return s.scoring.Validate(data)
	})
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request, fn func(GameData) (any, error)) {
	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", requestID)
	logger := s.logger.With("requestId", requestID)

	var data GameData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&data); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorData{Code: CodeBadRequest, Message: "failed to parse request body"})
		return
	}

	result, err := fn(data)
	if err != nil {
		code := ErrorCode(err)
		status := http.StatusUnprocessableEntity
		if code == CodeBadRequest {
			status = http.StatusBadRequest
		}
		logger.Debug("Request rejected", "code", code, "error", err)
		writeJSON(w, status, ErrorData{Code: code, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // Ignore write errors, the client is gone
}
