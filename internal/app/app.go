package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/jaennil/guide_helper/raster/pkg/telemetry"
)

const shutdownTimeout = 30 * time.Second

// initTelemetry returns a no-op shutdown when tracing is disabled.
func initTelemetry(cfg config.Telemetry, serviceName string, l logger.Logger) func() {
	if !cfg.Enabled {
		return func() {}
	}

	shutdown, err := telemetry.InitTracer(telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	}, l)
	if err != nil {
		l.Fatal("failed to initialize telemetry", "error", err)
	}
	l.Info("telemetry initialized", "service", serviceName)

	return func() {
		if err := shutdown(context.Background()); err != nil {
			l.Error("failed to shutdown telemetry", "error", err)
		}
	}
}

// serve runs the server until SIGINT or SIGTERM and then drains it.
func serve(server *http.Server, l logger.Logger) {
	serverErr := make(chan error, 1)
	go func() {
		l.Info("starting http server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			l.Error("http server failed", "error", err)
			return
		}
	case sig := <-quit:
		l.Info("received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	l.Info("shutting down http server...", "address", server.Addr)
	if err := server.Shutdown(ctx); err != nil {
		l.Error("http server shutdown failed", "error", err)
		return
	}
	l.Info("http server stopped", "address", server.Addr)
}
