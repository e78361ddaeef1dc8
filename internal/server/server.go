// Package server provides the HTTP server setup for go-proposalpdf.
//
// NewServer loads the layout, checks the template and wires the proposal
// service into the router.
//
// Expected outputs:
// - Server listens on the configured address (default :8080)
// - A missing or invalid template or layout fails startup
//
// Usage:
//
//	server, err := server.NewServer(cfg, logger)
//	server.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-proposalpdf/internal/config"
	"go-proposalpdf/internal/handlers"
	"go-proposalpdf/internal/layout"
	"go-proposalpdf/internal/proposal"
)

type Server struct {
	Handler        *handlers.APIHandler
	AllowedOrigins []string
	Limiter        *rate.Limiter
	Logger         *zap.Logger
}

// LoadLayout returns the layout named in cfg, or the built-in one.
func LoadLayout(cfg *config.Config) (*layout.Layout, error) {
	if cfg.Layout == "" {
		return layout.Default(), nil
	}
	return layout.LoadFile(cfg.Layout)
}

// NewService builds the proposal service described by cfg.
func NewService(cfg *config.Config, logger *zap.Logger) (*proposal.Service, error) {
	l, err := LoadLayout(cfg)
	if err != nil {
		return nil, err
	}
	return proposal.NewService(l, proposal.Options{
		TemplatePath:   cfg.Template,
		MaxImageSide:   cfg.MaxImageSide,
		MaxImagePixels: cfg.MaxImagePixels,
		RejectMismatch: cfg.Items.RejectMismatch,
	}, logger)
}

// NewLimiter returns the proposal rate limiter, or nil when limiting is off.
func NewLimiter(cfg *config.Config) *rate.Limiter {
	if cfg.RateLimit.RPS <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
}

func NewServer(cfg *config.Config, logger *zap.Logger) (*http.Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc, err := NewService(cfg, logger)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		Handler:        handlers.NewAPIHandler(svc, cfg.UploadSizeBytes(), logger),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Limiter:        NewLimiter(cfg),
		Logger:         logger,
	}

	logger.Info("proposal service configured",
		zap.String("op", "server.NewServer"),
		zap.String("address", cfg.ListenAddress()),
		zap.String("template", cfg.Template),
		zap.String("layout", svc.Layout().Name),
		zap.Int64("max_upload_bytes", cfg.UploadSizeBytes()),
	)

	server := &http.Server{
		Addr:         cfg.ListenAddress(),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}
