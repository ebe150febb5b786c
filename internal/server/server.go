// Package server runs an HTTP handler with readiness reporting and graceful
// shutdown. The mock backend is served through it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/crossorg/hrconsole/internal/log"
	"github.com/crossorg/hrconsole/internal/version"
)

// Server wraps an http.Server with a readiness endpoint.
type Server struct {
	httpServer      *http.Server
	log             *log.Logger
	ready           atomic.Bool
	inShutdown      atomic.Bool
	shutdownTimeout time.Duration
	started         atomic.Int64 // unix nanos of the last Serve
}

// Config holds server configuration.
type Config struct {
	// Address is the listen address (e.g., ":8123", "127.0.0.1:8123")
	Address string

	// ShutdownTimeout is the maximum time to wait for connections to drain during shutdown.
	// Defaults to 10 seconds if not specified.
	ShutdownTimeout time.Duration

	// ReadTimeout defaults to 10 seconds.
	ReadTimeout time.Duration

	// WriteTimeout defaults to 10 seconds.
	WriteTimeout time.Duration

	// IdleTimeout defaults to 60 seconds.
	IdleTimeout time.Duration

	Logger *log.Logger
}

// readiness is the /healthz payload.
type readiness struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewServer creates a server for handler. /healthz is answered by the server
// itself; every other path goes to handler.
func NewServer(handler http.Handler, cfg Config) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Discard()
	}

	s := &Server{
		log:             cfg.Logger.WithComponent("server"),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleReadiness)
	mux.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Start listens on the configured address and serves until shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	s.started.Store(time.Now().UnixNano())
	s.ready.Store(true)
	s.log.Info("listening", "addr", ln.Addr().String())

	err := s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones to drain,
// up to the shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)
	s.ready.Store(false)

	s.httpServer.SetKeepAlivesEnabled(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run serves on ln until ctx is done, then shuts down gracefully. A serve
// failure is returned as is; after cancellation the shutdown result is.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ln) }()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	// ctx is already done; drain on a fresh one bounded by the shutdown timeout.
	if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	return <-serveErr
}

// IsShuttingDown returns whether the server is shutting down.
func (s *Server) IsShuttingDown() bool {
	return s.inShutdown.Load()
}

// handleReadiness answers 200 while serving and 503 before start or during
// shutdown.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	body := readiness{Status: "ready", Version: version.GetInfo().Short()}
	if started := s.started.Load(); started != 0 {
		body.Uptime = time.Since(time.Unix(0, started)).Round(time.Second).String()
	}
	if !s.ready.Load() || s.inShutdown.Load() {
		body.Status = "unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Warn("failed to encode readiness")
	}
}
