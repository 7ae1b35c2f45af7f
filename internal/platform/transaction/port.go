package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for transaction data access
type Repository interface {
	// Create inserts a new transaction
	Create(ctx context.Context, tx *Transaction) error

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// List retrieves a user's transactions, newest first
	List(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Transaction, error)

	// Update overwrites the mutable fields of a transaction
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// SetFraudulent sets the fraud flag on a transaction
	SetFraudulent(ctx context.Context, id uuid.UUID, fraudulent bool) error
}
