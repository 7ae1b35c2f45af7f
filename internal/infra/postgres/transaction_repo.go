package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

const transactionColumns = `id, user_id, amount::text, category, description, timestamp, is_fraudulent, created_at, updated_at`

// TransactionRepository implements the transaction repository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, amount, category, description, timestamp, is_fraudulent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Amount,
		string(tx.Category),
		tx.Description,
		tx.Timestamp,
		tx.IsFraudulent,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// List retrieves a user's transactions, newest first
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, error) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("timestamp >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("timestamp <= $%d", len(args)))
	}
	if filter.FraudulentOnly {
		conds = append(conds, "is_fraudulent")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY timestamp DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*transaction.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// Update overwrites the mutable fields of a transaction
func (r *TransactionRepository) Update(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $2, category = $3, description = $4, timestamp = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		tx.ID,
		tx.Amount,
		string(tx.Category),
		tx.Description,
		tx.Timestamp,
		tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// SetFraudulent sets the fraud flag on a transaction
func (r *TransactionRepository) SetFraudulent(ctx context.Context, id uuid.UUID, fraudulent bool) error {
	query := `UPDATE transactions SET is_fraudulent = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, fraudulent)
	if err != nil {
		return fmt.Errorf("failed to flag transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

func scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var amount, category string

	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&amount,
		&category,
		&tx.Description,
		&tx.Timestamp,
		&tx.IsFraudulent,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	tx.Category = transaction.Category(category)

	return &tx, nil
}
