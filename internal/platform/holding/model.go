package holding

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType classifies a portfolio holding
type AssetType string

const (
	AssetTypeStock      AssetType = "stock"
	AssetTypeBond       AssetType = "bond"
	AssetTypeETF        AssetType = "etf"
	AssetTypeCrypto     AssetType = "crypto"
	AssetTypeRealEstate AssetType = "real_estate"
	AssetTypeOther      AssetType = "other"
)

// IsValid checks if the asset type is supported
func (t AssetType) IsValid() bool {
	switch t {
	case AssetTypeStock, AssetTypeBond, AssetTypeETF, AssetTypeCrypto, AssetTypeRealEstate, AssetTypeOther:
		return true
	}
	return false
}

// ParseAssetType maps free text onto an asset type, falling back to other
func ParseAssetType(s string) AssetType {
	t := AssetType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t
	}
	return AssetTypeOther
}

// Holding is a position in a user's investment portfolio.
// CurrentValue is the total market value of the position, not a per-unit price.
type Holding struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	UserID        uuid.UUID        `json:"user_id" db:"user_id"`
	AssetName     string           `json:"asset_name" db:"asset_name"`
	Symbol        *string          `json:"symbol,omitempty" db:"symbol"`
	AssetType     AssetType        `json:"asset_type" db:"asset_type"`
	Quantity      decimal.Decimal  `json:"quantity" db:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchase_price" db:"purchase_price"`
	PurchaseDate  time.Time        `json:"purchase_date" db:"purchase_date"`
	CurrentValue  *decimal.Decimal `json:"current_value,omitempty" db:"current_value"`
	LastUpdated   time.Time        `json:"last_updated" db:"last_updated"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

// CostBasis returns purchase price × quantity
func (h *Holding) CostBasis() decimal.Decimal {
	return h.PurchasePrice.Mul(h.Quantity)
}

// EffectiveValue returns the current value when known and non-zero, else the cost basis
func (h *Holding) EffectiveValue() decimal.Decimal {
	if h.CurrentValue != nil && !h.CurrentValue.IsZero() {
		return *h.CurrentValue
	}
	return h.CostBasis()
}

// Performance describes how a holding moved since purchase
type Performance struct {
	PercentChange  float64         `json:"percent_change"`
	AbsoluteChange decimal.Decimal `json:"absolute_change"`
	PerUnitChange  decimal.Decimal `json:"per_unit_change"`
}

// Performance compares the effective value with the cost basis
func (h *Holding) Performance() Performance {
	basis := h.CostBasis()
	change := h.EffectiveValue().Sub(basis)

	p := Performance{AbsoluteChange: change}
	if basis.IsPositive() {
		p.PercentChange = change.Div(basis).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	if h.Quantity.IsPositive() {
		p.PerUnitChange = change.Div(h.Quantity).Round(2)
	}
	return p
}

// Validate checks the structural invariants of a holding
func (h *Holding) Validate() error {
	if h.UserID == uuid.Nil {
		return ErrInvalidUserID
	}

	h.AssetName = strings.TrimSpace(h.AssetName)
	if h.AssetName == "" {
		return ErrMissingAssetName
	}
	if len(h.AssetName) > 200 {
		return ErrAssetNameTooLong
	}

	if !h.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if !h.PurchasePrice.IsPositive() {
		return ErrInvalidPurchasePrice
	}
	if h.CurrentValue != nil && h.CurrentValue.IsNegative() {
		return ErrInvalidCurrentValue
	}

	return nil
}

// Update holds the fields of a partial holding update
type Update struct {
	AssetName     *string          `json:"asset_name,omitempty"`
	Symbol        *string          `json:"symbol,omitempty"`
	AssetType     *string          `json:"asset_type,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	PurchaseDate  *time.Time       `json:"purchase_date,omitempty"`
	CurrentValue  *decimal.Decimal `json:"current_value,omitempty"`
}

// Apply copies the set fields onto h
func (u *Update) Apply(h *Holding) {
	if u.AssetName != nil {
		h.AssetName = *u.AssetName
	}
	if u.Symbol != nil {
		sym := strings.ToUpper(strings.TrimSpace(*u.Symbol))
		h.Symbol = &sym
	}
	if u.AssetType != nil {
		h.AssetType = ParseAssetType(*u.AssetType)
	}
	if u.Quantity != nil {
		h.Quantity = *u.Quantity
	}
	if u.PurchasePrice != nil {
		h.PurchasePrice = *u.PurchasePrice
	}
	if u.PurchaseDate != nil {
		h.PurchaseDate = u.PurchaseDate.UTC()
	}
	if u.CurrentValue != nil {
		v := *u.CurrentValue
		h.CurrentValue = &v
	}
}
