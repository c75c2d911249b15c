// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"creatorlens/internal/analysis"
	"creatorlens/internal/config"
	"creatorlens/internal/entitlement"
	"creatorlens/internal/logger"
	"creatorlens/internal/persistence"
	"creatorlens/internal/ratelimit"
)

// Analyzer runs the analysis pipeline for one video.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Response, error)
}

// Server represents the HTTP server
type Server struct {
	router       *chi.Mux
	httpServer   *http.Server
	db           persistence.Database
	analyzer     Analyzer
	limiter      *ratelimit.Limiter
	entitlements *entitlement.Checker
	cfg          *config.Config
	log          *slog.Logger
}

// New creates a new HTTP server instance
func New(cfg *config.Config, db persistence.Database, analyzer Analyzer, limiter *ratelimit.Limiter, entitlements *entitlement.Checker) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		db:           db,
		analyzer:     analyzer,
		limiter:      limiter,
		entitlements: entitlements,
		cfg:          cfg,
		log:          logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// The analysis pipeline makes up to three sequential LLM calls; the
	// timeout has to cover the worst case.
	s.router.Use(middleware.Timeout(s.cfg.Server.WriteTimeout))

	if s.cfg.Server.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Server.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/status", s.handleStatus)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.requireUser)
		r.Get("/videos/{videoID}/analysis", s.handleVideoAnalysis)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.cfg.Server.ReadTimeout,
		"write_timeout", s.cfg.Server.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}

// demoActive reports whether the demo fixture short-circuit applies.
func (s *Server) demoActive() bool {
	return s.cfg.Demo.Enabled && !s.cfg.Demo.MockProvider
}

var serverStartTime = time.Now()
