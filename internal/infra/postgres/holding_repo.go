package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
)

const holdingColumns = `id, user_id, asset_name, symbol, asset_type, quantity::text, purchase_price::text,
	purchase_date, current_value::text, last_updated, created_at`

// HoldingRepository implements the holding repository using PostgreSQL
type HoldingRepository struct {
	pool *pgxpool.Pool
}

// NewHoldingRepository creates a new PostgreSQL holding repository
func NewHoldingRepository(pool *pgxpool.Pool) *HoldingRepository {
	return &HoldingRepository{pool: pool}
}

// Create inserts a new holding
func (r *HoldingRepository) Create(ctx context.Context, h *holding.Holding) error {
	query := `
		INSERT INTO holdings (id, user_id, asset_name, symbol, asset_type, quantity, purchase_price,
		                      purchase_date, current_value, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		h.ID,
		h.UserID,
		h.AssetName,
		h.Symbol,
		string(h.AssetType),
		h.Quantity,
		h.PurchasePrice,
		h.PurchaseDate,
		h.CurrentValue,
		h.LastUpdated,
		h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}

	return nil
}

// GetByID retrieves a holding by ID
func (r *HoldingRepository) GetByID(ctx context.Context, id uuid.UUID) (*holding.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE id = $1`

	h, err := scanHolding(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, holding.ErrHoldingNotFound
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return h, nil
}

// GetByUserID retrieves all holdings of a user, oldest first
func (r *HoldingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*holding.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE user_id = $1 ORDER BY created_at, id`
	return r.query(ctx, query, userID)
}

// GetPriced retrieves every holding that carries a market symbol
func (r *HoldingRepository) GetPriced(ctx context.Context) ([]*holding.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE symbol IS NOT NULL AND symbol <> '' ORDER BY symbol`
	return r.query(ctx, query)
}

func (r *HoldingRepository) query(ctx context.Context, query string, args ...any) ([]*holding.Holding, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]*holding.Holding, 0)
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// Update overwrites the mutable fields of a holding
func (r *HoldingRepository) Update(ctx context.Context, h *holding.Holding) error {
	query := `
		UPDATE holdings
		SET asset_name = $2, symbol = $3, asset_type = $4, quantity = $5, purchase_price = $6,
		    purchase_date = $7, current_value = $8, last_updated = $9
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		h.ID,
		h.AssetName,
		h.Symbol,
		string(h.AssetType),
		h.Quantity,
		h.PurchasePrice,
		h.PurchaseDate,
		h.CurrentValue,
		h.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	if result.RowsAffected() == 0 {
		return holding.ErrHoldingNotFound
	}

	return nil
}

// Delete removes a holding
func (r *HoldingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	if result.RowsAffected() == 0 {
		return holding.ErrHoldingNotFound
	}

	return nil
}

// UpdateValuation records a new current value for a holding
func (r *HoldingRepository) UpdateValuation(ctx context.Context, id uuid.UUID, value decimal.Decimal, at time.Time) error {
	query := `UPDATE holdings SET current_value = $2, last_updated = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, value, at)
	if err != nil {
		return fmt.Errorf("failed to update valuation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return holding.ErrHoldingNotFound
	}

	return nil
}

func scanHolding(row pgx.Row) (*holding.Holding, error) {
	var h holding.Holding
	var assetType, quantity, purchasePrice string
	var currentValue *string

	err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.AssetName,
		&h.Symbol,
		&assetType,
		&quantity,
		&purchasePrice,
		&h.PurchaseDate,
		&currentValue,
		&h.LastUpdated,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.AssetType = holding.AssetType(assetType)
	if h.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", quantity, err)
	}
	if h.PurchasePrice, err = decimal.NewFromString(purchasePrice); err != nil {
		return nil, fmt.Errorf("invalid purchase price %q: %w", purchasePrice, err)
	}
	if currentValue != nil {
		v, err := decimal.NewFromString(*currentValue)
		if err != nil {
			return nil, fmt.Errorf("invalid current value %q: %w", *currentValue, err)
		}
		h.CurrentValue = &v
	}

	return &h, nil
}
