// Package main API.
//
// go-proposalpdf provides a REST API that stamps proposal data onto a PDF
// template.
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//	Host: localhost:8080
//
//	Consumes:
//	- multipart/form-data
//	- application/x-www-form-urlencoded
//
//	Produces:
//	- application/json
//	- application/pdf
//	- text/html
//
// swagger:meta
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"go-proposalpdf/internal/buildinfo"
	"go-proposalpdf/internal/config"
	"go-proposalpdf/internal/server"
)

func gracefulShutdown(apiServer *http.Server, timeout time.Duration, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has `timeout` to finish
	// the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func serve(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting server",
		zap.String("address", cfg.ListenAddress()),
		zap.String("build", buildinfo.String()),
	)

	apiServer, err := server.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(apiServer, cfg.ShutdownTimeout, logger, done)

	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}

	// Wait for the graceful shutdown to complete
	<-done
	logger.Info("graceful shutdown complete")
	return nil
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
