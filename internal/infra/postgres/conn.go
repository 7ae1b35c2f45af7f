package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool defaults, used when the matching Config field is zero
const (
	DefaultMaxConns        int32 = 10
	DefaultMinConns        int32 = 2
	DefaultMaxConnLifetime       = time.Hour
	DefaultMaxConnIdleTime       = 15 * time.Minute
	DefaultConnectTimeout        = 10 * time.Second
	DefaultApplicationName       = "personal-finance-agent"
)

// ErrPoolBounds is returned when MinConns exceeds the effective MaxConns
var ErrPoolBounds = errors.New("min connections exceed max connections")

// DB wraps a pgxpool connection pool
type DB struct {
	*pgxpool.Pool
}

// Config holds database configuration
type Config struct {
	URL             string
	ApplicationName string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// NewPool creates the pool and waits, at most ConnectTimeout, for the first ping
func NewPool(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := parseConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, poolCfg.ConnConfig.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// parseConfig turns cfg into a pgxpool config. An application_name already present in the
// URL wins over cfg.ApplicationName.
func parseConfig(cfg Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pc.MaxConns = orDefault(cfg.MaxConns, DefaultMaxConns)
	pc.MinConns = orDefault(cfg.MinConns, DefaultMinConns)
	if cfg.MinConns > 0 && pc.MinConns > pc.MaxConns {
		return nil, fmt.Errorf("%w: min %d, max %d", ErrPoolBounds, pc.MinConns, pc.MaxConns)
	}
	if pc.MinConns > pc.MaxConns {
		pc.MinConns = pc.MaxConns
	}

	pc.MaxConnLifetime = orDefault(cfg.MaxConnLifetime, DefaultMaxConnLifetime)
	pc.MaxConnIdleTime = orDefault(cfg.MaxConnIdleTime, DefaultMaxConnIdleTime)
	pc.ConnConfig.ConnectTimeout = orDefault(cfg.ConnectTimeout, DefaultConnectTimeout)

	if _, ok := pc.ConnConfig.RuntimeParams["application_name"]; !ok {
		pc.ConnConfig.RuntimeParams["application_name"] = orDefault(cfg.ApplicationName, DefaultApplicationName)
	}

	return pc, nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Close closes the database connection pool
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health pings the database; served by /health as the "database" check
func (db *DB) Health(ctx context.Context) error {
	return db.Ping(ctx)
}
