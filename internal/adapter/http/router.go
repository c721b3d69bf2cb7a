package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/daodash/internal/adapter/http/handler"
	"github.com/iho/daodash/internal/adapter/http/middleware"
	"github.com/iho/daodash/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TokenHandler    *handler.TokenHandler
	ScheduleHandler *handler.ScheduleHandler
	MemberHandler   *handler.MemberHandler
	ToastHandler    *handler.ToastHandler
	HealthHandler   *handler.HealthHandler

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Logger           *zerolog.Logger
	MetricsHandler   http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Token amounts
		r.Route("/tokens", func(r chi.Router) {
			r.Post("/format", cfg.TokenHandler.Format)
			r.Post("/parse", cfg.TokenHandler.Parse)
		})
		r.Post("/tallies", cfg.TokenHandler.Tally)

		// Timezones and proposal schedule
		r.Get("/timezones", cfg.ScheduleHandler.Timezones)
		r.Get("/timezones/difference", cfg.ScheduleHandler.Difference)
		r.Route("/schedule", func(r chi.Router) {
			r.Post("/date", cfg.ScheduleHandler.ResolveDate)
			r.Post("/gap", cfg.ScheduleHandler.CheckGap)
			r.Post("/validate", cfg.ScheduleHandler.ValidateWindow)
			r.Get("/date-ahead", cfg.ScheduleHandler.DateAhead)
			r.Get("/countdown", cfg.ScheduleHandler.Countdown)
		})

		// Members
		r.Post("/members/format", cfg.MemberHandler.Format)

		// Toasts
		r.Route("/toasts", func(r chi.Router) {
			r.Get("/", cfg.ToastHandler.List)
			r.Post("/", cfg.ToastHandler.Create)
			r.Delete("/", cfg.ToastHandler.Clear)
			r.Post("/dismiss", cfg.ToastHandler.DismissAll)
			r.Get("/{id}", cfg.ToastHandler.Get)
			r.Patch("/{id}", cfg.ToastHandler.Update)
			r.Delete("/{id}", cfg.ToastHandler.Remove)
			r.Post("/{id}/dismiss", cfg.ToastHandler.Dismiss)
		})
	})

	return r
}
