package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/codehasanali/mywallet/internal/adapter/http/handler"
	"github.com/codehasanali/mywallet/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler  *handler.WalletHandler
	LimitHandler   *handler.LimitHandler
	ReportHandler  *handler.ReportHandler
	SessionHandler *handler.SessionHandler
	HealthHandler  *handler.HealthHandler

	Logger      zerolog.Logger
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", cfg.WalletHandler.Summary)
			r.Delete("/", cfg.WalletHandler.Clear)
			r.Post("/reload", cfg.WalletHandler.Reload)

			r.Get("/transactions", cfg.WalletHandler.ListTransactions)
			r.Delete("/transactions/position/{index}", cfg.WalletHandler.RemoveAt)
			r.Delete("/transactions/{id}", cfg.WalletHandler.Remove)

			r.Post("/expenses", cfg.WalletHandler.AddExpense)
			r.Post("/incomes", cfg.WalletHandler.AddIncome)

			r.Get("/limits", cfg.LimitHandler.List)
			r.Put("/limits/{category}", cfg.LimitHandler.Update)

			r.Get("/history", cfg.ReportHandler.History)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", cfg.SessionHandler.Current)
			r.Post("/login", cfg.SessionHandler.Login)
			r.Post("/logout", cfg.SessionHandler.Logout)
		})
	})

	return r
}
