// Package sqlite is the embedded storage driver used for local development.
// It implements the same repository ports as the PostgreSQL driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	full_name     TEXT,
	password_hash TEXT NOT NULL,
	is_active     BOOLEAN NOT NULL DEFAULT 1,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL,
	last_login_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS transactions (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	amount        TEXT NOT NULL,
	category      TEXT NOT NULL,
	description   TEXT,
	timestamp     TIMESTAMP NOT NULL,
	is_fraudulent BOOLEAN NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_timestamp ON transactions(user_id, timestamp);

CREATE TABLE IF NOT EXISTS holdings (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	asset_name     TEXT NOT NULL,
	symbol         TEXT,
	asset_type     TEXT NOT NULL,
	quantity       TEXT NOT NULL,
	purchase_price TEXT NOT NULL,
	purchase_date  TIMESTAMP NOT NULL,
	current_value  TEXT,
	last_updated   TIMESTAMP NOT NULL,
	created_at     TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_holdings_user ON holdings(user_id);
`

// Store owns the SQLite handle. Decimal columns are stored as TEXT so no precision is lost.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database file at path and applies the schema
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_loc=UTC", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY under load
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Health checks the database handle
func (s *Store) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Users returns the user repository
func (s *Store) Users() *UserRepository {
	return &UserRepository{db: s.db}
}

// Transactions returns the transaction repository
func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{db: s.db}
}

// Holdings returns the holding repository
func (s *Store) Holdings() *HoldingRepository {
	return &HoldingRepository{db: s.db}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// expectOne maps a zero-row write onto notFound
func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
