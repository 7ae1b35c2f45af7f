package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
)

const holdingColumns = `id, user_id, asset_name, symbol, asset_type, quantity, purchase_price,
	purchase_date, current_value, last_updated, created_at`

// HoldingRepository implements the holding repository on SQLite
type HoldingRepository struct {
	db *sql.DB
}

// Create inserts a new holding
func (r *HoldingRepository) Create(ctx context.Context, h *holding.Holding) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO holdings (`+holdingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.AssetName, h.Symbol, string(h.AssetType),
		h.Quantity.String(), h.PurchasePrice.String(), h.PurchaseDate.UTC(),
		decimalText(h.CurrentValue), h.LastUpdated.UTC(), h.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}
	return nil
}

// GetByID retrieves a holding by ID
func (r *HoldingRepository) GetByID(ctx context.Context, id uuid.UUID) (*holding.Holding, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+holdingColumns+` FROM holdings WHERE id = ?`, id)
	h, err := scanHolding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, holding.ErrHoldingNotFound
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return h, nil
}

// GetByUserID retrieves all holdings of a user, oldest first
func (r *HoldingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*holding.Holding, error) {
	return r.query(ctx, `SELECT `+holdingColumns+` FROM holdings WHERE user_id = ? ORDER BY created_at, id`, userID)
}

// GetPriced retrieves every holding that carries a market symbol
func (r *HoldingRepository) GetPriced(ctx context.Context) ([]*holding.Holding, error) {
	return r.query(ctx, `SELECT `+holdingColumns+` FROM holdings WHERE symbol IS NOT NULL AND symbol <> '' ORDER BY symbol`)
}

func (r *HoldingRepository) query(ctx context.Context, query string, args ...any) ([]*holding.Holding, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
	res, err := r.db.ExecContext(ctx, `
		UPDATE holdings
		SET asset_name = ?, symbol = ?, asset_type = ?, quantity = ?, purchase_price = ?,
		    purchase_date = ?, current_value = ?, last_updated = ?
		WHERE id = ?`,
		h.AssetName, h.Symbol, string(h.AssetType), h.Quantity.String(), h.PurchasePrice.String(),
		h.PurchaseDate.UTC(), decimalText(h.CurrentValue), h.LastUpdated.UTC(), h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}
	return expectOne(res, holding.ErrHoldingNotFound)
}

// Delete removes a holding
func (r *HoldingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return expectOne(res, holding.ErrHoldingNotFound)
}

// UpdateValuation records a new current value for a holding
func (r *HoldingRepository) UpdateValuation(ctx context.Context, id uuid.UUID, value decimal.Decimal, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE holdings SET current_value = ?, last_updated = ? WHERE id = ?`,
		value.String(), at.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update valuation: %w", err)
	}
	return expectOne(res, holding.ErrHoldingNotFound)
}

func scanHolding(row rowScanner) (*holding.Holding, error) {
	var h holding.Holding
	var assetType, quantity, purchasePrice string
	var currentValue sql.NullString

	err := row.Scan(
		&h.ID, &h.UserID, &h.AssetName, &h.Symbol, &assetType, &quantity, &purchasePrice,
		&h.PurchaseDate, &currentValue, &h.LastUpdated, &h.CreatedAt,
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
	if currentValue.Valid {
		v, err := decimal.NewFromString(currentValue.String)
		if err != nil {
			return nil, fmt.Errorf("invalid current value %q: %w", currentValue.String, err)
		}
		h.CurrentValue = &v
	}
	return &h, nil
}

func decimalText(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
