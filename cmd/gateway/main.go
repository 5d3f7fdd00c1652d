// Package main is the entry point for the gemini-mcp gateway.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jstewartrr/gemini-mcp/internal/config"
	"github.com/jstewartrr/gemini-mcp/internal/gemini"
	"github.com/jstewartrr/gemini-mcp/internal/memory"
	"github.com/jstewartrr/gemini-mcp/internal/prompt"
	"github.com/jstewartrr/gemini-mcp/internal/recorder"
	"github.com/jstewartrr/gemini-mcp/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; environment wins when both set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Cancel on SIGINT/SIGTERM for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Store unreachability is a degraded mode, not a startup failure: the
	// memory tools return sentinels until the store comes back.
	if err := store.Ping(ctx); err != nil {
		logger.Warn("memory store unreachable at startup", "err", err)
	}

	gen := gemini.NewClient(cfg.ProjectID, cfg.Location, cfg.Model, logger)
	composer := prompt.NewComposer(store, cfg.SystemPrompt, logger)
	rec := recorder.New(store, cfg.Model, logger)
	service := server.NewService(store, gen, composer, rec, cfg.Instance, cfg.StrictErrors, logger)

	logger.Info("starting gemini-mcp gateway",
		"version", server.Version,
		"instance", cfg.Instance,
		"model", cfg.Model,
		"db_type", cfg.DBType,
		"strict_errors", cfg.StrictErrors,
	)

	return server.New(service, cfg).Serve(ctx)
}

// newStore constructs the configured store backend.
func newStore(ctx context.Context, cfg config.Config) (memory.Store, error) {
	switch cfg.DBType {
	case "sqlite":
		store, err := memory.NewSQLiteStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		if err := store.InitSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	default:
		return memory.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
}
