// Package httpapi exposes the finance services over a JSON REST API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Akshan03/Personal-Finance-Agent/internal/transport/httpapi/handler"
	"github.com/Akshan03/Personal-Finance-Agent/internal/transport/httpapi/middleware"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	TransactionHandler *handler.TransactionHandler
	PortfolioHandler   *handler.PortfolioHandler
	BudgetHandler      *handler.BudgetHandler
	FraudHandler       *handler.FraudHandler
	InvestmentHandler  *handler.InvestmentHandler
	InsightsHandler    *handler.InsightsHandler
	HealthHandler      *handler.HealthHandler
	JWTMiddleware      func(http.Handler) http.Handler

	// RateLimiter is shared with its owner, who runs the sweeper; nil builds one from RateLimitRPS
	RateLimiter  *middleware.RateLimiter
	RateLimitRPS int

	// TrustProxy takes the client address from X-Real-IP or X-Forwarded-For. Enable only
	// behind a proxy that overwrites those headers.
	TrustProxy bool
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	r := chi.NewRouter()

	// Global middleware
	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = middleware.NewPerSecondLimiter(cfg.RateLimitRPS)
	}

	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(limiter.Middleware)

	// Health checks (no authentication required)
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.GetHealth)
	}
	r.Get("/health/live", handler.GetLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.HealthHandler != nil {
			r.Get("/health", cfg.HealthHandler.GetHealth)
		}
		r.Get("/health/live", handler.GetLiveness)

		// Auth routes (public)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware == nil {
			return
		}
		r.Group(func(r chi.Router) {
			r.Use(cfg.JWTMiddleware)

			if cfg.AuthHandler != nil {
				r.Get("/users/me", cfg.AuthHandler.Me)
			}

			if h := cfg.TransactionHandler; h != nil {
				r.Route("/transactions", func(r chi.Router) {
					r.Get("/", h.GetTransactions)
					r.Post("/", h.CreateTransaction)
					r.Get("/stats", h.GetStats)
					r.Get("/{id}", h.GetTransaction)
					r.Put("/{id}", h.UpdateTransaction)
					r.Delete("/{id}", h.DeleteTransaction)
				})
			}

			if h := cfg.PortfolioHandler; h != nil {
				r.Route("/portfolio", func(r chi.Router) {
					r.Get("/", h.GetPortfolio)
					r.Post("/", h.CreateHolding)
					r.Get("/{id}", h.GetHolding)
					r.Put("/{id}", h.UpdateHolding)
					r.Delete("/{id}", h.DeleteHolding)
				})
			}

			if h := cfg.BudgetHandler; h != nil {
				r.Get("/budget/summary", h.GetSummary)
				r.Post("/budget/advice", h.GetAdvice)
				r.Post("/budget/plan", h.CreatePlan)
			}

			if h := cfg.FraudHandler; h != nil {
				r.Post("/fraud/scan", h.Scan)
				r.Post("/fraud/report/{id}", h.Report)
			}

			if h := cfg.InvestmentHandler; h != nil {
				r.Get("/investment/assessment", h.GetAssessment)
				r.Post("/investment/recommendations", h.Recommend)
				r.Get("/investment/market-trends", h.GetMarketTrends)
			}

			if h := cfg.InsightsHandler; h != nil {
				r.Get("/insights/comprehensive", h.GetComprehensive)
			}
		})
	})

	return r
}
