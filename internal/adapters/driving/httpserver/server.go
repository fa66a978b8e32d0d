package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
	"github.com/custodia-labs/duxt-mcp/internal/metrics"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("httpserver: document service is required")

// ErrMissingMCPHandler is returned when no MCP handler is provided.
var ErrMissingMCPHandler = errors.New("httpserver: mcp handler is required")

// Config configures the HTTP server.
type Config struct {
	Host      string
	Port      int
	RateLimit RateLimitConfig
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReloadReporter reports the most recent scheduled reload.
type ReloadReporter interface {
	LastResult() (domain.ReloadResult, bool)
}

// Server serves MCP over HTTP alongside health and metrics endpoints.
type Server struct {
	cfg       Config
	documents driving.DocumentService
	mcp       http.Handler
	reloads   ReloadReporter
	router    chi.Router
}

// New creates a server. mcpHandler answers POST /mcp.
func New(cfg Config, documents driving.DocumentService, mcpHandler http.Handler) (*Server, error) {
	if documents == nil {
		return nil, ErrMissingDocumentService
	}
	if mcpHandler == nil {
		return nil, ErrMissingMCPHandler
	}

	s := &Server{
		cfg:       cfg,
		documents: documents,
		mcp:       mcpHandler,
	}
	s.router = s.routes()
	return s, nil
}

// SetReloadReporter adds the last scheduled reload to /health.
// Call before Run.
func (s *Server) SetReloadReporter(r ReloadReporter) {
	s.reloads = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/", s.handleLanding)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metricsHandler())

	mcpHandler := s.mcp
	if s.cfg.RateLimit.Enabled() {
		mcpHandler = NewRateLimiter(s.cfg.RateLimit).Middleware(mcpHandler)
	}
	r.Method(http.MethodPost, "/mcp", mcpHandler)
	r.Get("/mcp", methodNotAllowed("Method not allowed. Use POST."))
	r.Delete("/mcp", methodNotAllowed("Method not allowed. Stateless server."))

	return r
}

// metricsHandler exposes the default registry plus the document gauges.
func (s *Server) metricsHandler() http.Handler {
	docs := prometheus.NewRegistry()
	docs.MustRegister(metrics.NewDocsCollector(func() domain.Snapshot {
		return s.documents.Snapshot(context.Background())
	}))
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer, docs}
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	port := s.cfg.Port
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	logger.Info("duxt-mcp server running on port %d", port)
	logger.Info("  Health: http://localhost:%d/health", port)
	logger.Info("  MCP:    http://localhost:%d/mcp", port)
	logger.Info("  Docs loaded: %d", s.documents.Snapshot(ctx).Count)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Debug("http server stopped")
	return nil
}
