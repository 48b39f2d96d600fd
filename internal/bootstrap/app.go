package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yanqian/kundli/internal/infra/config"
)

// App owns the chart API server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server}
}

// Run serves until ctx is cancelled, then drains in-flight chart requests
// for at most cfg.HTTP.ShutdownGrace.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting",
			"address", a.server.Addr,
			"metrics_enabled", a.cfg.Metrics.Enabled,
			"ephemeris_cache", a.cfg.Ephemeris.Cache.Enabled,
		)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownGrace)
		defer cancel()
		a.logger.Info("shutdown signal received", "grace", a.cfg.HTTP.ShutdownGrace.String())
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		a.logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
