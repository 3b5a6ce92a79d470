// ============================================================================
// astview - AST Tree Viewer
// ============================================================================
//
// Package:     server
// Description: HTTP debug page with websocket live reload
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package server

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/msto63/astview/foundation/ast"
	mdwerror "github.com/msto63/astview/foundation/core/error"
	"github.com/msto63/astview/internal/render"
	"github.com/msto63/astview/internal/source"
	"github.com/msto63/astview/pkg/core/cache"
	"github.com/msto63/astview/pkg/core/health"
	"github.com/msto63/astview/pkg/core/logging"
	"github.com/msto63/astview/pkg/core/version"
)

// Route paths
const (
	PathPage     = "/"
	PathFragment = "/fragment"
	PathSocket   = "/ws"
	PathHealth   = "/healthz"
)

// Server serves the rendered tree of one AST source
type Server struct {
	httpServer *http.Server
	hub        *hub
	fragments  *cache.Cache[string]
	health     *health.Registry
	logger     *logging.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Addr            string
	Source          string // AST document path; empty selects the demo tree
	PollInterval    time.Duration
	Title           string
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:8087",
		PollInterval:    source.DefaultPollInterval,
		Title:           "AST",
		ShutdownTimeout: 5 * time.Second,
	}
}

// New creates a new debug server
func New(cfg Config, logger *logging.Logger) *Server {
	defaults := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}

	logger = logging.OrDiscard(logger).Named("server")

	s := &Server{
		hub:       newHub(logger),
		fragments: cache.New[string](cache.Config{MaxItems: 16}),
		health:    health.NewRegistry(version.Name, version.Version),
		logger:    logger,
		config:    cfg,
	}

	if cfg.Source == "" {
		s.health.Register(health.AlwaysHealthy("source"))
	} else {
		s.health.Register(health.FileCheck("source", cfg.Source))
	}
	s.health.RegisterFunc("fragment_cache", func(ctx context.Context) health.CheckResult {
		hits, misses, rate := s.fragments.Stats()
		return health.CheckResult{
			Name:    "fragment_cache",
			Status:  health.StatusHealthy,
			Message: "fragment cache active",
			Details: map[string]interface{}{
				"entries":  s.fragments.Size(),
				"hits":     hits,
				"misses":   misses,
				"hit_rate": rate,
			},
		}
	})

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler with request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(PathFragment, s.handleFragment)
	mux.HandleFunc(PathSocket, s.handleSocket)
	mux.HandleFunc(PathHealth, s.health.Handler())
	mux.HandleFunc(PathPage, s.handlePage)
	return loggingMiddleware(s.logger, mux)
}

// Clients returns the number of connected live reload clients
func (s *Server) Clients() int {
	return s.hub.count()
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting debug server", "addr", s.config.Addr, "source", s.sourceName())

	if s.config.Source != "" {
		watcher := source.NewWatcher(s.config.Source, s.config.PollInterval, s.logger)
		go func() {
			if err := watcher.Run(ctx, func(source.Stamp) { s.Broadcast() }); err != nil {
				s.logger.ErrorErr("Source watcher stopped", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return mdwerror.Wrap(err, "debug server failed").
				WithCode(mdwerror.CodeNetworkError).
				WithOperation("server.Start").
				WithDetail("addr", s.config.Addr)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down debug server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.hub.closeAll()
	defer s.Close()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return mdwerror.Wrap(err, "debug server shutdown failed").
			WithCode(mdwerror.CodeTimeout).
			WithOperation("server.Start")
	}
	return nil
}

// Close releases the fragment cache
func (s *Server) Close() {
	s.fragments.Close()
}

// Broadcast renders the current source and pushes it to all clients
func (s *Server) Broadcast() {
	fragment, err := s.fragment(s.logger)
	if err != nil {
		s.logger.WarnErr("Failed to render source for broadcast", err)
		s.hub.broadcast(errorResponse(err))
		return
	}
	s.hub.broadcast(WSResponse{Type: "fragment", Payload: fragment})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != PathPage {
		http.NotFound(w, r)
		return
	}

	tree, err := s.load()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page := render.Page(s.config.Title, render.New(s.logger).Render(tree), render.PageOptions{
		LiveReload: true,
		SocketPath: PathSocket,
	})

	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	fragment, err := s.fragment(s.logger)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(fragment))
}

// fragment loads the source and renders it with a fresh renderer. Results
// are cached per source stamp.
func (s *Server) fragment(logger *logging.Logger) (string, error) {
	renderFragment := func() (string, error) {
		tree, err := s.load()
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		if err := render.RenderHTML(&buf, tree, logger); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	if s.config.Source == "" {
		return s.fragments.GetOrSet(cache.Key(source.DemoName), renderFragment)
	}

	stamp, err := source.Stat(s.config.Source)
	if err != nil {
		// Let the loader report the failure with its own code
		return renderFragment()
	}
	key := cache.Key(s.config.Source, stamp.ModTime.Format(time.RFC3339Nano), strconv.FormatInt(stamp.Size, 10))
	return s.fragments.GetOrSet(key, renderFragment)
}

func (s *Server) load() (interface{}, error) {
	if s.config.Source == "" {
		return source.Demo(), nil
	}
	tree, err := source.Load(s.config.Source)
	if err != nil {
		return nil, err
	}
	for _, verr := range ast.Validate(tree) {
		s.logger.WarnErr("AST validation", verr)
	}
	return tree, nil
}

func (s *Server) sourceName() string {
	if s.config.Source == "" {
		return source.DemoName
	}
	return s.config.Source
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := mdwerror.GetCode(err)
	if mdwerror.GetSeverity(err).ShouldAlert() {
		s.logger.ErrorErr("Request failed", err, "code", string(code))
	} else {
		s.logger.WarnErr("Request failed", err, "code", string(code))
	}
	http.Error(w, err.Error(), code.HTTPStatus())
}
