// Package main is the entry point for the content remix server.
//
// The main package stays minimal — its job is to:
// 1. Load configuration
// 2. Create the logger
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, ...), which keeps the app testable and its components
// reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/content-remix/internal/config"
	"github.com/sakif/content-remix/internal/server"
)

func main() {
	// Config first — the log level depends on the environment.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	if !cfg.HasUsableKey() {
		// The server still starts: the tweet store and mode listing work
		// without a key, and /api/remix reports a configuration error.
		logger.Warn("OPENAI_API_KEY not configured — /api/remix will return errors")
	}

	// Ensure the database directory exists (like `mkdir -p`).
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (via Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
