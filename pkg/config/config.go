package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"

	LLMProviderAnthropic = "anthropic"
	LLMProviderGemini    = "gemini"
	LLMProviderNone      = "none"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port           string
	Env            string
	AllowedOrigins []string
	RateLimitRPS   int
	TrustProxy     bool

	// Storage configuration
	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	// Postgres pool configuration; zero values keep the pool defaults
	DBMaxConns        int
	DBMinConns        int
	DBMaxConnLifetime time.Duration
	DBMaxConnIdleTime time.Duration
	DBConnectTimeout  time.Duration

	// Redis configuration; an empty URL falls back to the in-process cache
	RedisURL      string
	RedisPassword string

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	// LLM configuration
	LLMProvider     string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	LLMTimeout      time.Duration

	// Market data configuration
	CoinGeckoAPIKey   string
	MarketCacheTTL    time.Duration
	ValuationInterval time.Duration

	// Budget configuration
	SavingsTargetPercent float64
}

// Load loads configuration from environment variables, reading a .env file first when present
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		AllowedOrigins:       getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitRPS:         getEnvAsInt("RATE_LIMIT_RPS", 10),
		TrustProxy:           getEnvAsBool("TRUST_PROXY", false),
		StorageDriver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SQLitePath:           getEnv("SQLITE_PATH", "finance.db"),
		DBMaxConns:           getEnvAsInt("DB_MAX_CONNS", 0),
		DBMinConns:           getEnvAsInt("DB_MIN_CONNS", 0),
		DBMaxConnLifetime:    getEnvAsDuration("DB_MAX_CONN_LIFETIME", 0),
		DBMaxConnIdleTime:    getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 0),
		DBConnectTimeout:     getEnvAsDuration("DB_CONNECT_TIMEOUT", 0),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTExpiry:            getEnvAsDuration("JWT_EXPIRY", 30*time.Minute),
		LLMProvider:          strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderNone)),
		AnthropicAPIKey:      getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:       getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:           getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		CoinGeckoAPIKey:      getEnv("COINGECKO_API_KEY", ""),
		MarketCacheTTL:       getEnvAsDuration("MARKET_CACHE_TTL", time.Hour),
		ValuationInterval:    getEnvAsDuration("VALUATION_INTERVAL", 15*time.Minute),
		SavingsTargetPercent: getEnvAsFloat("SAVINGS_TARGET_PERCENT", 20),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
		if c.DBMaxConns < 0 || c.DBMinConns < 0 {
			return fmt.Errorf("DB_MAX_CONNS and DB_MIN_CONNS must not be negative")
		}
		if c.DBMaxConns > 0 && c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
		}
	case StorageDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	switch c.LLMProvider {
	case LLMProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic")
		}
	case LLMProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case LLMProviderNone:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.SavingsTargetPercent < 0 || c.SavingsTargetPercent > 100 {
		return fmt.Errorf("SAVINGS_TARGET_PERCENT must be between 0 and 100")
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s", "15m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
