// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes project search over HTTP. It parses query
// parameters into criteria, runs them through the query executor, and
// renders the page envelope as JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/project-catalog/internal/query"
	"github.com/pdiddy/project-catalog/pkg/types"
)

const (
	defaultHost            = "127.0.0.1"
	defaultPort            = 8080
	defaultShutdownTimeout = 10 * time.Second
)

// Server is the HTTP search endpoint.
type Server struct {
	config   types.ServerConfig
	search   types.SearchConfig
	executor *query.Executor
	logger   *slog.Logger
	router   *gin.Engine
	server   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithSearchConfig sets request defaults such as the page size.
func WithSearchConfig(cfg types.SearchConfig) Option {
	return func(s *Server) {
		s.search = cfg
	}
}

// New creates a server for the executor and builds its routes.
func New(cfg types.ServerConfig, executor *query.Executor, opts ...Option) *Server {
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		config:   cfg,
		executor: executor,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	if s.config.Mode != "" {
		gin.SetMode(s.config.Mode)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(s.logger))

	s.router.GET("/health", s.health)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/projects/search", s.searchProjects)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens until Stop is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", s.server.Addr, err)
	}
	return nil
}

// Stop shuts the server down gracefully, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping server")
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// requestLogger logs one line per request at Info, or Warn for 5xx.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
