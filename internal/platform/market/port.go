package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Cache stores serialized quotes. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// QuoteProvider fetches a live unit price for a symbol
type QuoteProvider interface {
	Name() Source
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}
