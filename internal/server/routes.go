package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	_ "go-proposalpdf/docs"
	"go-proposalpdf/internal/errors"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimited rejects requests once the limiter is exhausted.
func (s *Server) rateLimited(next http.Handler) http.Handler {
	if s.Limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Limiter.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(s.Limiter)))
			w.Header().Set("X-Error-Code", string(errors.ErrCodeRateLimited))
			http.Error(w, "Rate limit exceeded", errors.HTTPStatus(errors.ErrCodeRateLimited))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// retryAfterSeconds is the time until the limiter refills one token.
func retryAfterSeconds(l *rate.Limiter) int {
	secs := math.Ceil(1 / float64(l.Limit()))
	if secs < 1 || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return 1
	}
	return int(secs)
}

// requestLogger logs one line per request with zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.Logger.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Document-ID", "X-Error-Code"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)

	h := s.Handler
	r.Get("/", h.Index)
	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.Health)
		api.Get("/layout", h.Layout)
		api.With(s.rateLimited).Post("/proposals", h.CreateProposal)
	})

	return r
}
