package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func tx(amount string, category transaction.Category, at time.Time) transaction.Transaction {
	return transaction.Transaction{
		ID:        uuid.New(),
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		Timestamp: at,
	}
}

// spaced builds transactions one day apart
func spaced(category transaction.Category, amounts ...string) []transaction.Transaction {
	txs := make([]transaction.Transaction, len(amounts))
	for i, a := range amounts {
		txs[i] = tx(a, category, baseTime.AddDate(0, 0, i))
	}
	return txs
}

func position(name string, assetType holding.AssetType, qty, price string) holding.Holding {
	return holding.Holding{
		ID:            uuid.New(),
		AssetName:     name,
		AssetType:     assetType,
		Quantity:      decimal.RequireFromString(qty),
		PurchasePrice: decimal.RequireFromString(price),
	}
}

func withValue(h holding.Holding, value string) holding.Holding {
	v := decimal.RequireFromString(value)
	h.CurrentValue = &v
	return h
}
