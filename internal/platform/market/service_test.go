package market

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() Source {
	return SourceCoinGecko
}

func (m *MockProvider) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) expire(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

func newTestService(t *testing.T, cache Cache, crypto QuoteProvider) *Service {
	t.Helper()
	catalog, err := LoadCatalog()
	require.NoError(t, err)
	svc := NewService(cache, crypto, catalog, &ServiceConfig{TTL: 10 * time.Minute})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_GetQuote_CatalogAndCache(t *testing.T) {
	cache := newMapCache()
	svc := newTestService(t, cache, nil)

	q, err := svc.GetQuote(context.Background(), " aapl ", "stock")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "189.25", q.Price.String())
	assert.Equal(t, SourceCatalog, q.Source)
	assert.False(t, q.Stale)

	assert.Equal(t, 10*time.Minute, cache.ttls["quote:security:AAPL"])
	assert.Equal(t, StaleTTL, cache.ttls["quote:security:AAPL:stale"])
}

func TestService_GetQuote_CryptoProviderCachesResult(t *testing.T) {
	cache := newMapCache()
	provider := new(MockProvider)
	provider.On("Quote", mock.Anything, "BTC").Return(decimal.RequireFromString("64250.5"), nil).Once()
	svc := newTestService(t, cache, provider)

	first, err := svc.GetQuote(context.Background(), "btc", "crypto")
	require.NoError(t, err)
	second, err := svc.GetQuote(context.Background(), "BTC", "crypto")
	require.NoError(t, err)

	assert.Equal(t, SourceCoinGecko, first.Source)
	assert.True(t, first.Price.Equal(second.Price))
	provider.AssertNumberOfCalls(t, "Quote", 1)
}

func TestService_GetQuote_StaleFallback(t *testing.T) {
	cache := newMapCache()
	provider := new(MockProvider)
	provider.On("Quote", mock.Anything, "ETH").Return(decimal.RequireFromString("3100"), nil).Once()
	provider.On("Quote", mock.Anything, "ETH").Return(decimal.Zero, errors.New("timeout")).Once()
	svc := newTestService(t, cache, provider)

	_, err := svc.GetQuote(context.Background(), "ETH", "crypto")
	require.NoError(t, err)
	cache.expire("quote:crypto:ETH")

	q, err := svc.GetQuote(context.Background(), "ETH", "crypto")
	require.NoError(t, err)
	assert.True(t, q.Stale)
	assert.Equal(t, "3100", q.Price.String())
}

func TestService_GetQuote_Unavailable(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Quote", mock.Anything, "DOGE").Return(decimal.Zero, errors.New("503"))
	svc := newTestService(t, newMapCache(), provider)

	_, err := svc.GetQuote(context.Background(), "DOGE", "crypto")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)

	_, err = svc.GetQuote(context.Background(), "ZZZZ", "stock")
	assert.ErrorIs(t, err, ErrQuoteUnavailable)

	_, err = svc.GetQuote(context.Background(), "  ", "stock")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestService_GetQuote_CircuitOpensAfterFailures(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Quote", mock.Anything, mock.Anything).Return(decimal.Zero, errors.New("down"))
	svc := newTestService(t, nil, provider)

	for i := 0; i < 5; i++ {
		_, err := svc.GetQuote(context.Background(), "SOL", "crypto")
		require.Error(t, err)
	}

	provider.AssertNumberOfCalls(t, "Quote", 3)
	assert.Equal(t, CircuitOpen, svc.breaker.State())
}

func TestService_UnitPrice(t *testing.T) {
	svc := newTestService(t, nil, nil)

	price, err := svc.UnitPrice(context.Background(), "BND", "bond")
	require.NoError(t, err)
	assert.Equal(t, "78.5", price.String())
}

func TestService_GetTrends(t *testing.T) {
	svc := newTestService(t, nil, nil)

	trends := svc.GetTrends(context.Background())

	assert.NotEmpty(t, trends.Summary)
	assert.Equal(t, SentimentFor(trends.SentimentScore), trends.Sentiment)
	assert.GreaterOrEqual(t, trends.SentimentScore, -1.0)
	assert.LessOrEqual(t, trends.SentimentScore, 1.0)
	assert.Equal(t, "3.9%", trends.EconomicIndicators["unemployment"])
	assert.Equal(t, 2024, trends.LastUpdated.Year())

	trends.SectorPerformance["energy"] = "mutated"
	assert.NotEqual(t, "mutated", svc.GetTrends(context.Background()).SectorPerformance["energy"])
}

func TestService_LowRiskOptions(t *testing.T) {
	svc := newTestService(t, nil, nil)

	opts := svc.LowRiskOptions()

	require.Len(t, opts, 4)
	assert.Equal(t, "Government Bond Fund A", opts[0].Name)
	assert.Equal(t, "Very Low", opts[1].RiskLevel)
}

func TestSentimentFor(t *testing.T) {
	assert.Equal(t, SentimentNegative, SentimentFor(-0.31))
	assert.Equal(t, SentimentNeutral, SentimentFor(-0.3))
	assert.Equal(t, SentimentNeutral, SentimentFor(0.29))
	assert.Equal(t, SentimentPositive, SentimentFor(0.3))
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.True(t, cb.CanAttempt())
	cb.RecordFailure()
	assert.False(t, cb.CanAttempt())

	now = now.Add(2 * time.Minute)
	assert.True(t, cb.CanAttempt())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordFailure()
	assert.False(t, cb.CanAttempt())

	now = now.Add(2 * time.Minute)
	require.True(t, cb.CanAttempt())
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := ParseCatalog([]byte("{"))
	assert.Error(t, err)
}
