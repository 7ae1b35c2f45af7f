package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

const transactionColumns = `id, user_id, amount, category, description, timestamp, is_fraudulent, created_at, updated_at`

// TransactionRepository implements the transaction repository on SQLite
type TransactionRepository struct {
	db *sql.DB
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Amount.String(), string(tx.Category), tx.Description,
		tx.Timestamp.UTC(), tx.IsFraudulent, tx.CreatedAt.UTC(), tx.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// List retrieves a user's transactions, newest first
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, error) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if filter.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.StartDate != nil {
		conds = append(conds, "timestamp >= ?")
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		conds = append(conds, "timestamp <= ?")
		args = append(args, filter.EndDate.UTC())
	}
	if filter.FraudulentOnly {
		conds = append(conds, "is_fraudulent = 1")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY timestamp DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, category = ?, description = ?, timestamp = ?, updated_at = ?
		WHERE id = ?`,
		tx.Amount.String(), string(tx.Category), tx.Description, tx.Timestamp.UTC(), tx.UpdatedAt.UTC(), tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return expectOne(res, transaction.ErrTransactionNotFound)
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOne(res, transaction.ErrTransactionNotFound)
}

// SetFraudulent sets the fraud flag on a transaction
func (r *TransactionRepository) SetFraudulent(ctx context.Context, id uuid.UUID, fraudulent bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET is_fraudulent = ?, updated_at = ? WHERE id = ?`,
		fraudulent, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to flag transaction: %w", err)
	}
	return expectOne(res, transaction.ErrTransactionNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var amount, category string

	err := row.Scan(
		&tx.ID, &tx.UserID, &amount, &category, &tx.Description,
		&tx.Timestamp, &tx.IsFraudulent, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	tx.Category = transaction.Category(category)
	return &tx, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
