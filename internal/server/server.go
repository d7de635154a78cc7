// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where every
// dependency is assembled in one place:
//
//	config.Config → sqlite.DB → services → handlers → routes
//
// Each layer only receives what it needs: the tweet service gets the
// repository interface (not the concrete sqlite.DB), the handlers get the
// services (not the repository or the completion SDK).
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/content-remix/internal/completion"
	"github.com/sakif/content-remix/internal/config"
	"github.com/sakif/content-remix/internal/handler"
	"github.com/sakif/content-remix/internal/middleware"
	sqliteRepo "github.com/sakif/content-remix/internal/repository/sqlite"
	"github.com/sakif/content-remix/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection: it is closed during graceful
// shutdown, after in-flight requests have drained, so pending WAL writes
// are flushed and the file lock released.
type Server struct {
	router *chi.Mux
	cfg    config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server with the given config, wiring the full
// dependency chain.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /api/health            → liveness probe
//	GET    /api/remix-types       → fixed mode enumeration
//	POST   /api/remix             → transform text via the completion service
//	POST   /api/save-tweet        → persist a ≤280-char snippet
//	GET    /api/saved-tweets      → list saved snippets, newest first
//	DELETE /api/saved-tweets/{id} → delete by id
//	*      (anything else)        → JSON 404 listing the endpoints above
//	GET    /*                     → static frontend, when the directory exists
//
// Middleware order matters — it executes in the order added: request IDs
// first (so everything downstream can reference them), then real IP, panic
// recovery, our slog request logger, and finally CORS.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.Handler(s.corsOptions()))

	// === WIRE THE DEPENDENCY CHAIN ===
	// The completion client is only contacted when a usable key exists;
	// the remix service fails fast with a configuration error otherwise.
	completionClient := completion.New(s.cfg.OpenAIKey, s.cfg.OpenAIModel, s.cfg.OpenAIBaseURL)
	remixService := service.NewRemixService(completionClient, s.cfg.HasUsableKey(), s.logger)
	tweetService := service.NewTweetService(s.db, s.logger)

	exposeDetail := !s.cfg.IsProduction()
	remixHandler := handler.NewRemixHandler(remixService, exposeDetail, s.logger)
	tweetHandler := handler.NewTweetHandler(tweetService, exposeDetail, s.logger)
	healthHandler := handler.NewHealthHandler(s.cfg.Env)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)
		r.Get("/remix-types", remixHandler.HandleTypes)
		r.Post("/remix", remixHandler.HandleRemix)
		r.Post("/save-tweet", tweetHandler.HandleSave)
		r.Get("/saved-tweets", tweetHandler.HandleList)
		r.Delete("/saved-tweets/{id}", tweetHandler.HandleDelete)

		// Unknown /api paths get the JSON 404 with the endpoint listing.
		r.NotFound(handler.HandleNotFound)
	})

	// === STATIC FRONTEND ===
	// The browser client is a static page; serve it when the directory
	// exists so a backend-only deployment still works.
	if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
		fileServer := http.FileServer(http.Dir(s.cfg.StaticDir))
		s.router.Handle("/*", fileServer)
	} else {
		s.router.NotFound(handler.HandleNotFound)
	}
}

// corsOptions derives the cross-origin policy from the environment:
// development allows any origin (the Vite dev server runs on its own port),
// production allows only the configured origin.
func (s *Server) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.IsProduction() {
		if s.cfg.AllowedOrigin != "" {
			opts.AllowedOrigins = []string{s.cfg.AllowedOrigin}
		} else {
			// No origin configured in production: allow none rather than all.
			opts.AllowedOrigins = []string{}
		}
	}
	return opts
}

// Start starts the HTTP server and handles graceful shutdown.
//
// Shutdown order: stop accepting connections, give in-flight requests 30
// seconds to finish, then close the database (deferred, so it runs last
// even on a panic).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // completion calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("environment", s.cfg.Env),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
