// Package httpserver wires the HTTP API: page search and rendering, manual
// sync triggering, health/status and optional Prometheus metrics.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/hoyowiki/internal/config"
	"git.home.luguber.info/inful/hoyowiki/internal/metrics"
	"git.home.luguber.info/inful/hoyowiki/internal/server/handlers"
	smw "git.home.luguber.info/inful/hoyowiki/internal/server/middleware"
)

// Options carries the dependencies the server exposes over HTTP.
type Options struct {
	Content  handlers.ContentService
	Searcher handlers.PageSearcher
	Stats    handlers.IndexStats
	Syncer   handlers.SyncTrigger
	Registry *prom.Registry // nil disables the /metrics endpoint
}

// Server serves the wiki content API on a single listener.
type Server struct {
	cfg    *config.Config
	opts   Options
	server *http.Server

	apiHandlers        *handlers.APIHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	mchain func(http.Handler) http.Handler
}

// New constructs a new HTTP server wiring instance.
func New(cfg *config.Config, opts Options) *Server {
	s := &Server{cfg: cfg, opts: opts}
	s.apiHandlers = handlers.NewAPIHandlers(opts.Content, opts.Searcher, opts.Syncer, cfg.Sync.Categories, cfg.Wiki.BaseURL)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(opts.Stats, cfg.Sync.Categories)
	s.mchain = smw.Chain(slog.Default())
	return s
}

// Handler builds the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/pages", s.apiHandlers.HandleSearch)
	mux.HandleFunc("GET /api/pages/{id}", s.apiHandlers.HandlePage)
	mux.HandleFunc("GET /api/pages/{id}/preview", s.apiHandlers.HandlePreview)
	mux.HandleFunc("POST /api/sync", s.apiHandlers.HandleSync)
	mux.HandleFunc("GET /api/status", s.monitoringHandlers.HandleStatus)
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)

	if s.cfg.Server.Metrics && s.opts.Registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(s.opts.Registry))
	}

	return s.mchain(mux)
}

// Start binds the listen address and begins serving. The bind happens before
// returning so address conflicts fail fast.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Server.Listen, err)
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("HTTP server started", slog.String("listen", s.cfg.Server.Listen))
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}
