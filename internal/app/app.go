package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sophialabs/blueprintmock/internal/infrastructure/outbound/logging"
	"github.com/sophialabs/blueprintmock/internal/infrastructure/wiring"
)

// App is the thin lifecycle manager that delegates dependency construction to wiring.Container.
type App struct {
	cfg        Config
	container  *wiring.Container
	httpServer *http.Server
}

// New validates cfg, creates the logger, loads the configuration document
// through the container and sets up the HTTP server. A document that cannot
// be read or holds nothing is an error.
func New(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	handler, err := logging.NewHandler(cfg.LogOutput, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Prefix: "blueprintmock",
	})
	if err != nil {
		return nil, err
	}
	logger := logging.New(slog.New(handler))

	container, err := wiring.New(context.Background(), wiring.Params{
		ConfigPath:  cfg.ConfigPath,
		TraceSize:   cfg.TraceSize,
		AdminPrefix: cfg.AdminPrefix,
		Seed:        cfg.Seed,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire infrastructure: %w", err)
	}

	port := cfg.Port
	if port == 0 {
		port = container.Loaded().ServerPort
	}

	maxLatency := time.Duration(container.Loaded().MaxLatencyMs()) * time.Millisecond
	writeTimeout := cfg.EffectiveWriteTimeout(maxLatency)
	if writeTimeout > cfg.WriteTimeout {
		logger.Info("write timeout raised to fit configured latency", "latency", maxLatency, "write_timeout", writeTimeout)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      container.Server(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		container:  container,
		httpServer: httpServer,
	}, nil
}

// Addr returns the address the server listens on.
func (a *App) Addr() string {
	return a.httpServer.Addr
}

// Run serves HTTP until SIGINT/SIGTERM or context cancellation, then shuts
// down gracefully. In-flight requests, delayed ones included, get up to
// ShutdownTimeout to finish.
func (a *App) Run(ctx context.Context) error {
	logger := a.container.Logger()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server",
			"addr", a.httpServer.Addr,
			"config", a.cfg.ConfigPath,
			"endpoints", a.container.Loaded().Catalog.Len(),
			"admin", a.cfg.AdminPrefix,
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
