// Package app initializes and runs the dashboard server. It selects the
// storage backend, prepares the schema, seeds the bootstrap account, and
// starts the HTTP API with graceful shutdown.
package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/webdevreplits/azure-01/internal/auth"
	"github.com/webdevreplits/azure-01/internal/azuremock"
	"github.com/webdevreplits/azure-01/internal/config"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/storage"
	"github.com/webdevreplits/azure-01/internal/web"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend storage.Backend
	server  *web.Server
}

// NewApp wires the application. When no storage engine is reachable the
// app still starts, in demo mode, so the dashboard keeps serving mock
// provider data.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	var authSvc *auth.Service

	backend, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Warn(ctx, "no storage engine available, starting in demo mode", "error", err)
		backend = nil
	} else {
		if err := backend.EnsureSchema(ctx); err != nil {
			_ = backend.Close()
			return nil, err
		}
		authSvc = auth.NewService(backend.Accounts(), logger)
		if cfg.BootstrapDemo {
			if err := authSvc.EnsureBootstrapAccount(ctx); err != nil {
				logger.Error(ctx, "bootstrap account setup failed", "error", err)
			}
		}
	}

	azure := azuremock.NewClient(uint64(time.Now().UnixNano()))
	server := web.NewServer(cfg, logger, backend, authSvc, azure)

	return &App{config: cfg, logger: logger, backend: backend, server: server}, nil
}

// Run serves until SIGINT, SIGTERM or ctx cancellation, then shuts down.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		if a.backend != nil {
			if err := a.backend.Close(); err != nil {
				a.logger.Error(ctx, "storage close failed", "error", err)
			}
		}
	}()

	a.logger.Info(ctx, "starting dashboard server")
	return a.server.Run(ctx)
}
