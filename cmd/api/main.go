package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/gateway/coingecko"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/llm"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/memcache"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/postgres"
	infraRedis "github.com/Akshan03/Personal-Finance-Agent/internal/infra/redis"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/sqlite"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/advisor"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/budget"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/fraud"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/investment"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/user"
	"github.com/Akshan03/Personal-Finance-Agent/internal/transport/httpapi"
	"github.com/Akshan03/Personal-Finance-Agent/internal/transport/httpapi/handler"
	"github.com/Akshan03/Personal-Finance-Agent/internal/transport/httpapi/middleware"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/config"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

// storage bundles the repositories of one storage driver
type storage struct {
	users        user.Repository
	transactions transaction.Repository
	holdings     holding.Repository
	health       handler.HealthChecker
	close        func()
}

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Personal Finance API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"llm_provider", cfg.LLMProvider,
	)

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error("Failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer store.close()
	log.Info("Storage ready", "driver", cfg.StorageDriver)

	healthChecks := map[string]handler.HealthChecker{"database": store.health}

	// Quote cache: Redis when configured so that instances share it, in-process otherwise
	var quoteCache market.Cache
	if cfg.RedisURL != "" {
		redisClient, err := infraRedis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		redisCache := infraRedis.NewCache(redisClient, log)
		quoteCache = redisCache
		healthChecks["cache"] = redisCache
		log.Info("Redis connection established")
	} else {
		localCache, err := memcache.New(0)
		if err != nil {
			log.Error("Failed to create in-memory cache", "error", err)
			os.Exit(1)
		}
		defer localCache.Close()
		quoteCache = localCache
		log.Info("Using in-memory quote cache")
	}

	// Market data
	catalog, err := market.LoadCatalog()
	if err != nil {
		log.Error("Failed to load market catalog", "error", err)
		os.Exit(1)
	}
	marketSvc := market.NewService(quoteCache, coingecko.NewClient(cfg.CoinGeckoAPIKey), catalog, &market.ServiceConfig{
		TTL:    cfg.MarketCacheTTL,
		Logger: log,
	})

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Error("Failed to initialize LLM provider", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	if !llm.Enabled(gen) {
		log.Warn("LLM provider not configured, AI features use rule-based fallbacks")
	}

	// Initialize services
	userSvc := user.NewService(store.users, log)
	transactionSvc := transaction.NewService(store.transactions)
	holdingSvc := holding.NewService(store.holdings)

	budgetSvc := budget.NewService(transactionSvc, gen, &budget.Config{
		SavingsTargetPercent: cfg.SavingsTargetPercent,
		LLMTimeout:           cfg.LLMTimeout,
		Logger:               log,
	})
	fraudSvc := fraud.NewService(transactionSvc, gen, &fraud.Config{
		LLMTimeout: cfg.LLMTimeout,
		Logger:     log,
	})
	investmentSvc := investment.NewService(holdingSvc, marketSvc, gen, &investment.Config{
		LLMTimeout: cfg.LLMTimeout,
		Logger:     log,
	})
	advisorSvc := advisor.NewService(budgetSvc, fraudSvc, investmentSvc, log)

	jwtSvc := middleware.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	limiter := middleware.NewPerSecondLimiter(cfg.RateLimitRPS)
	go limiter.Run(ctx, middleware.DefaultSweepInterval)

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthHandler:        handler.NewAuthHandler(userSvc, jwtSvc),
		TransactionHandler: handler.NewTransactionHandler(transactionSvc, budgetSvc),
		PortfolioHandler:   handler.NewPortfolioHandler(holdingSvc),
		BudgetHandler:      handler.NewBudgetHandler(budgetSvc),
		FraudHandler:       handler.NewFraudHandler(fraudSvc),
		InvestmentHandler:  handler.NewInvestmentHandler(investmentSvc),
		InsightsHandler:    handler.NewInsightsHandler(advisorSvc),
		HealthHandler:      handler.NewHealthHandler(healthChecks),
		JWTMiddleware:      middleware.JWTMiddleware(jwtSvc),
		RateLimiter:        limiter,
		TrustProxy:         cfg.TrustProxy,
	})

	// LLM calls run well past a typical API write timeout
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout*2 + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background valuation of holdings that carry a market symbol
	valuationUpdater := holding.NewValuationUpdater(store.holdings, marketSvc, &holding.ValuationUpdaterConfig{
		Interval: cfg.ValuationInterval,
		Logger:   log,
	})
	go valuationUpdater.Run(ctx)
	log.Info("Valuation updater started", "interval", cfg.ValuationInterval)

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{
			users:        store.Users(),
			transactions: store.Transactions(),
			holdings:     store.Holdings(),
			health:       store,
			close:        func() { _ = store.Close() },
		}, nil
	default:
		db, err := postgres.NewPool(ctx, postgres.Config{
			URL:             cfg.DatabaseURL,
			MaxConns:        int32(cfg.DBMaxConns),
			MinConns:        int32(cfg.DBMinConns),
			MaxConnLifetime: cfg.DBMaxConnLifetime,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			ConnectTimeout:  cfg.DBConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		return &storage{
			users:        postgres.NewUserRepository(db.Pool),
			transactions: postgres.NewTransactionRepository(db.Pool),
			holdings:     postgres.NewHoldingRepository(db.Pool),
			health:       db,
			close:        db.Close,
		}, nil
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case config.LLMProviderAnthropic:
		return llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case config.LLMProviderGemini:
		g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return llm.Disabled{}, nil
	}
}
