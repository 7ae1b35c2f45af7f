package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

// ValidateTransactions rejects structurally invalid transactions: a zero timestamp or an
// empty category. Zero amounts, unknown categories and empty lists are tolerated.
func ValidateTransactions(txs []transaction.Transaction) error {
	for i := range txs {
		if txs[i].Timestamp.IsZero() {
			return fmt.Errorf("transaction %s: %w", txs[i].ID, ErrInvalidTimestamp)
		}
		if strings.TrimSpace(string(txs[i].Category)) == "" {
			return fmt.Errorf("transaction %s: %w", txs[i].ID, ErrMissingCategory)
		}
	}
	return nil
}

// ValidateHoldings rejects holdings with a non-positive quantity or a negative price or value.
// Unknown asset types and empty lists are tolerated.
func ValidateHoldings(holdings []holding.Holding) error {
	for i := range holdings {
		h := &holdings[i]
		if !h.Quantity.IsPositive() {
			return fmt.Errorf("holding %s: %w", h.ID, ErrInvalidQuantity)
		}
		if h.PurchasePrice.IsNegative() {
			return fmt.Errorf("holding %s: %w", h.ID, ErrInvalidPurchasePrice)
		}
		if h.CurrentValue != nil && h.CurrentValue.IsNegative() {
			return fmt.Errorf("holding %s: %w", h.ID, ErrInvalidCurrentValue)
		}
	}
	return nil
}

// ValidateSavingsTarget checks a savings target percentage
func ValidateSavingsTarget(pct float64) error {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return ErrInvalidSavingsTarget
	}
	return nil
}
