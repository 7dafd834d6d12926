package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MacroDash/internal/handler/ws"
	"MacroDash/internal/service/scheduler"
	"MacroDash/pkg/cache"
	"MacroDash/pkg/config"
	xhttp "MacroDash/pkg/http"
	"MacroDash/pkg/logger"
)

// App encapsulates the entire application lifecycle: the HTTP server, the
// WebSocket hub, the background refresh job and the payload cache.
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	handler   xhttp.Handler
	hub       *ws.Hub
	refresher *scheduler.Refresher
	payloads  cache.Service

	httpServer *xhttp.Server
}

// New creates an App with all dependencies.
func New(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	hub *ws.Hub,
	refresher *scheduler.Refresher,
	payloads cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		handler:   handler,
		hub:       hub,
		refresher: refresher,
		payloads:  payloads,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	go a.hub.Run(ctx)

	if err := a.refresher.Start(ctx); err != nil {
		return err
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", logger.Error(err))
		return err
	}
	a.log.Info("dashboard serving",
		logger.Int("port", a.cfg.Server.Port),
		logger.Int("window_days", a.cfg.Pipeline.WindowDays),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(cancel)
}

// shutdown stops the refresh job, the hub and the HTTP server in order.
func (a *App) shutdown(cancel context.CancelFunc) error {
	a.refresher.Stop()

	// Cancelling the run context closes all hub clients.
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
	}

	switch c := a.payloads.(type) {
	case *cache.LayeredCache:
		if err := c.Close(); err != nil {
			a.log.Warn("cache close error", logger.Error(err))
		}
	case *cache.MemoryCache:
		c.Close()
	}

	a.log.Info("shutdown complete")
	return nil
}
