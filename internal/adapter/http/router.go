// Package http wires handlers and middleware into the service router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wihngo/wallet/internal/adapter/http/handler"
	"github.com/wihngo/wallet/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ConnectHandler  *handler.ConnectHandler
	PlatformHandler *handler.PlatformHandler
	HealthHandler   *handler.HealthHandler
	Logging         *middleware.LoggingMiddleware
	ConnectLimiter  *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/platform", cfg.PlatformHandler.Detect)

		r.Route("/phantom/connect", func(r chi.Router) {
			if cfg.ConnectLimiter != nil {
				r.Use(cfg.ConnectLimiter.Limit)
			}

			r.Post("/init", cfg.ConnectHandler.Init)
			r.Post("/decrypt", cfg.ConnectHandler.Decrypt)
			r.Get("/{connectionID}", cfg.ConnectHandler.Status)
		})
	})

	return r
}
