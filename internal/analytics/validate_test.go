package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

func TestValidateTransactions(t *testing.T) {
	assert.NoError(t, ValidateTransactions(nil))
	assert.NoError(t, ValidateTransactions([]transaction.Transaction{tx("0", "mystery", baseTime)}))

	missingTime := tx("-5", transaction.CategoryFood, time.Time{})
	assert.ErrorIs(t, ValidateTransactions([]transaction.Transaction{missingTime}), ErrInvalidTimestamp)

	missingCategory := tx("-5", " ", baseTime)
	assert.ErrorIs(t, ValidateTransactions([]transaction.Transaction{missingCategory}), ErrMissingCategory)
}

func TestValidateHoldings(t *testing.T) {
	assert.NoError(t, ValidateHoldings([]holding.Holding{position("AAPL", "collectible", "1", "10")}))

	zeroQty := position("AAPL", holding.AssetTypeStock, "0", "10")
	assert.ErrorIs(t, ValidateHoldings([]holding.Holding{zeroQty}), ErrInvalidQuantity)

	negPrice := position("AAPL", holding.AssetTypeStock, "1", "-10")
	assert.ErrorIs(t, ValidateHoldings([]holding.Holding{negPrice}), ErrInvalidPurchasePrice)

	negValue := position("AAPL", holding.AssetTypeStock, "1", "10")
	v := decimal.NewFromInt(-1)
	negValue.CurrentValue = &v
	assert.ErrorIs(t, ValidateHoldings([]holding.Holding{negValue}), ErrInvalidCurrentValue)
}

func TestValidateSavingsTarget(t *testing.T) {
	assert.NoError(t, ValidateSavingsTarget(0))
	assert.NoError(t, ValidateSavingsTarget(20))
	assert.NoError(t, ValidateSavingsTarget(100))
	assert.ErrorIs(t, ValidateSavingsTarget(-1), ErrInvalidSavingsTarget)
	assert.ErrorIs(t, ValidateSavingsTarget(100.5), ErrInvalidSavingsTarget)
	assert.ErrorIs(t, ValidateSavingsTarget(math.NaN()), ErrInvalidSavingsTarget)
}
