package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/simplebank/internal/adapter/http/handler"
	"github.com/iho/simplebank/internal/adapter/http/middleware"
	"github.com/iho/simplebank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler  *handler.AccountHandler
	AuthHandler     *handler.AuthHandler
	TransferHandler *handler.TransferHandler
	LedgerHandler   *handler.LedgerHandler
	HealthHandler   *handler.HealthHandler

	TokenVerifier    middleware.TokenVerifier
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
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
		r.Post("/accounts", cfg.AccountHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.Me)
				r.Put("/profile", cfg.AccountHandler.UpdateProfile)
				r.Get("/transactions", cfg.LedgerHandler.History)

				// Money movement replays on a repeated Idempotency-Key
				r.Group(func(r chi.Router) {
					if cfg.IdempotencyStore != nil {
						r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, 0).Wrap)
					}
					r.Post("/deposits", cfg.TransferHandler.Deposit)
					r.Post("/transfers", cfg.TransferHandler.Transfer)
				})
			})

			r.Get("/ledger/reconciliation", cfg.LedgerHandler.Reconciliation)
		})
	})

	return r
}
