package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"MarketMCP/pkg/config"
	xhttp "MarketMCP/pkg/http"
	applogger "MarketMCP/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, httpServer *xhttp.Server) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the listener fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting",
		applogger.String("environment", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("gemini_enabled", a.cfg.Gemini.Enabled()),
		applogger.Bool("redis_enabled", a.cfg.Cache.Redis.Enabled),
		applogger.Strings("cors_origins", a.cfg.Server.CORS.AllowOrigins),
	)
	if a.cfg.RateLimit.Enabled {
		a.logger.Info("rate limiting proxy routes",
			applogger.Float64("rps", a.cfg.RateLimit.RPS),
			applogger.Int("burst", a.cfg.RateLimit.Burst),
		)
	}

	errCh := a.httpServer.Start()
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if !ok {
			return errors.New("http server stopped unexpectedly")
		}
		a.logger.Error("http server error", applogger.Error(err))
		return err
	}

	return a.shutdown()
}

// shutdown gracefully stops the HTTP server. Infrastructure clients are
// closed by the DI cleanup.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
