// Package server wires the extraction pipeline, knowledge store, and
// RAG service behind an HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/config"
	"github.com/labdecoder/labdecoder/internal/extract"
	"github.com/labdecoder/labdecoder/internal/knowledge"
	"github.com/labdecoder/labdecoder/internal/metrics"
	"github.com/labdecoder/labdecoder/internal/providers"
	"github.com/labdecoder/labdecoder/internal/rag"
	"github.com/labdecoder/labdecoder/internal/server/endpoints"
	"github.com/labdecoder/labdecoder/internal/session"
	"github.com/labdecoder/labdecoder/internal/svcctx"
)

// Server is the labdecoder HTTP server. It owns the knowledge store
// handle and the long-lived RAG service for its lifetime.
type Server struct {
	httpServer *http.Server
	knowledge  *knowledge.Store
	services   *svcctx.Services
	logger     *slog.Logger

	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1).
	Host string
	// Port is the port to listen on (default: 8080).
	Port string
	// App carries generator/knowledge/extraction settings.
	App *config.Config
	// Generator overrides the config-selected generation backend.
	// Used by tests and embedders.
	Generator providers.Generator
	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// New creates a Server: pattern rules are compiled, the knowledge
// store is opened, and the generation capability is selected, all
// before the first request.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.App == nil {
		cfg.App = config.Default()
	}

	patterns, err := extract.LoadPatterns(cfg.App.Extract.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern rules: %w", err)
	}
	extractor := extract.NewExtractor(patterns, cfg.Logger)

	store, err := knowledge.Open(cfg.App.Knowledge.DBPath, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge store: %w", err)
	}

	generator := cfg.Generator
	if generator == nil {
		generator = providers.NewOpenAIClient(cfg.App.Generator.ToOpenAIConfig())
	}
	cfg.Logger.Info("generation capability selected", "provider", generator.Name(), "model", generator.Model())

	recorder := metrics.NewRecorder()
	generator = metrics.InstrumentGenerator(generator, recorder)

	s := &Server{
		knowledge: store,
		logger:    cfg.Logger,
		services: &svcctx.Services{
			Extractor: extractor,
			RAG:       rag.New(store, generator, cfg.Logger),
			Sessions:  session.NewStore(cfg.App.Server.SessionTTL),
			Logger:    cfg.Logger,
		},
	}

	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{PingKnowledge: store.Ping, Stats: recorder.Snapshot}) {
		s.endpointRegistry.Register(ep)
	}

	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start runs the server. It blocks until the context is cancelled or
// an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.knowledge.Ping(ctx); err != nil {
		// Degraded is fine: the RAG layer substitutes sentinel context.
		s.logger.Warn("knowledge store not ready, responses will lack reference context", "error", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown drains the HTTP server and closes the knowledge store.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := s.knowledge.Close(); err != nil {
		s.logger.Error("knowledge store close error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the fully wired HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), s.services)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit ensures the service wiring is present before a handler
// that depends on it runs.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svcctx.ServicesFrom(r.Context()) == nil {
			api.WriteError(w, http.StatusServiceUnavailable, "server not fully initialized")
			return
		}
		next(w, r)
	}
}
