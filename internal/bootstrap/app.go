package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rprovine/reefwatch/internal/domain/chat"
	"github.com/rprovine/reefwatch/internal/infra/config"
)

// App encapsulates the HTTP server lifecycle and background maintenance.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	chatSvc chat.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, chatSvc chat.Service) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, chatSvc: chatSvc}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	go a.sweepSessions(ctx)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		a.chatSvc.Sweep()
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// sweepSessions periodically evicts chat sessions past their max age.
func (a *App) sweepSessions(ctx context.Context) {
	interval := a.cfg.Chat.SweepInterval
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if swept := a.chatSvc.Sweep(); swept > 0 {
				a.logger.Info("expired chat sessions swept", "count", swept)
			}
		}
	}
}
