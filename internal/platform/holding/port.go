package holding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for holding data access
type Repository interface {
	// Create inserts a new holding
	Create(ctx context.Context, h *Holding) error

	// GetByID retrieves a holding by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Holding, error)

	// GetByUserID retrieves all holdings of a user
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Holding, error)

	// Update overwrites the mutable fields of a holding
	Update(ctx context.Context, h *Holding) error

	// Delete removes a holding
	Delete(ctx context.Context, id uuid.UUID) error

	// GetPriced retrieves every holding that carries a market symbol
	GetPriced(ctx context.Context) ([]*Holding, error)

	// UpdateValuation records a new current value for a holding
	UpdateValuation(ctx context.Context, id uuid.UUID, value decimal.Decimal, at time.Time) error
}

// Pricer quotes the current per-unit price of a symbol
type Pricer interface {
	UnitPrice(ctx context.Context, symbol string, assetType string) (decimal.Decimal, error)
}
