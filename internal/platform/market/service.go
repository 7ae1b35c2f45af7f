package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

const (
	// DefaultQuoteTTL is how long a fresh quote is served from cache
	DefaultQuoteTTL = time.Hour
	// StaleTTL is how long the last good quote is kept as a fallback
	StaleTTL = 24 * time.Hour

	keyPrefix = "quote:"
)

// ServiceConfig configures the market service
type ServiceConfig struct {
	TTL    time.Duration
	Logger *logger.Logger
}

// Service resolves quotes through the cache, then the provider for the asset type,
// then the last good quote. Crypto goes to the crypto provider, everything else to the catalog.
type Service struct {
	cache   Cache
	crypto  QuoteProvider
	catalog *Catalog
	breaker *CircuitBreaker
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

// NewService creates a market service. crypto may be nil, in which case crypto quotes are
// looked up in the catalog like any other symbol.
func NewService(cache Cache, crypto QuoteProvider, catalog *Catalog, cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Service{
		cache:   cache,
		crypto:  crypto,
		catalog: catalog,
		breaker: NewCircuitBreaker(3, 5*time.Minute),
		ttl:     ttl,
		logger:  log.WithComponent("market"),
		now:     time.Now,
	}
}

// GetQuote returns the unit price of symbol
func (s *Service) GetQuote(ctx context.Context, symbol, assetType string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}
	log := s.logger.WithContext(ctx).WithFields(map[string]interface{}{"symbol": symbol, "asset_type": assetType})

	key := cacheKey(symbol, assetType)
	if q, ok := s.readCache(ctx, key); ok {
		return q, nil
	}

	provider := s.providerFor(assetType)
	q, err := s.fetch(ctx, provider, symbol, assetType)
	if err == nil {
		s.writeCache(ctx, key, q, s.ttl)
		s.writeCache(ctx, staleKey(key), q, StaleTTL)
		return q, nil
	}
	log.WithError(err).Warn("quote provider failed", "provider", provider.Name())

	if stale, ok := s.readCache(ctx, staleKey(key)); ok {
		stale.Stale = true
		return stale, nil
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrQuoteUnavailable, symbol, err)
}

// UnitPrice returns only the price of a quote, for holding valuation
func (s *Service) UnitPrice(ctx context.Context, symbol, assetType string) (decimal.Decimal, error) {
	q, err := s.GetQuote(ctx, symbol, assetType)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Price, nil
}

// GetTrends returns the market outlook
func (s *Service) GetTrends(_ context.Context) Trends {
	return s.catalog.Trends(s.now())
}

// LowRiskOptions returns conservative products for low risk tolerance
func (s *Service) LowRiskOptions() []LowRiskOption {
	return s.catalog.LowRiskOptions()
}

// Security looks up reference data for a symbol
func (s *Service) Security(symbol string) (Security, bool) {
	return s.catalog.Security(symbol)
}

func (s *Service) providerFor(assetType string) QuoteProvider {
	if IsCrypto(assetType) && s.crypto != nil {
		return s.crypto
	}
	return s.catalog
}

func (s *Service) fetch(ctx context.Context, p QuoteProvider, symbol, assetType string) (*Quote, error) {
	// the catalog is local and never trips the breaker
	guarded := p.Name() != SourceCatalog
	if guarded && !s.breaker.CanAttempt() {
		return nil, ErrCircuitOpen
	}

	price, err := p.Quote(ctx, symbol)
	if err != nil {
		if guarded && !errors.Is(err, ErrSymbolNotFound) {
			s.breaker.RecordFailure()
		}
		return nil, err
	}
	if guarded {
		s.breaker.RecordSuccess()
	}

	q := &Quote{
		Symbol:    symbol,
		AssetType: assetType,
		Price:     price,
		Source:    p.Name(),
		AsOf:      s.now().UTC(),
	}
	if sec, ok := s.catalog.Security(symbol); ok && p.Name() == SourceCatalog {
		q.ChangePercent = sec.ChangePercent
	}
	return q, nil
}

func (s *Service) readCache(ctx context.Context, key string) (*Quote, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).Warn("cache read failed", "key", key)
		return nil, false
	}
	if !found {
		return nil, false
	}
	var q Quote
	if err := json.Unmarshal(data, &q); err != nil {
		s.logger.WithError(err).Warn("cached quote is corrupt", "key", key)
		return nil, false
	}
	return &q, true
}

func (s *Service) writeCache(ctx context.Context, key string, q *Quote, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.logger.WithError(err).Warn("cache write failed", "key", key)
	}
}

func cacheKey(symbol, assetType string) string {
	if IsCrypto(assetType) {
		return keyPrefix + "crypto:" + symbol
	}
	return keyPrefix + "security:" + symbol
}

func staleKey(key string) string {
	return key + ":stale"
}
