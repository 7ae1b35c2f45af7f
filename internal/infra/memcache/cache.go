package memcache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
)

const (
	defaultNumCounters = 100_000
	defaultMaxCost     = 32 << 20 // bytes
	defaultBufferItems = 64
)

// Cache is an in-process market.Cache for single-instance deployments without Redis.
// Entries cost their size in bytes.
type Cache struct {
	store *ristretto.Cache
}

// New creates a cache bounded to maxCostBytes; zero picks a 32 MiB default
func New(maxCostBytes int64) (*Cache, error) {
	if maxCostBytes <= 0 {
		maxCostBytes = defaultMaxCost
	}
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: defaultNumCounters,
		MaxCost:     maxCostBytes,
		BufferItems: defaultBufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory cache: %w", err)
	}
	return &Cache{store: store}, nil
}

// Get returns the value stored at key
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

// Set stores value at key for ttl. Writes are buffered; Set waits for them to land so a
// following Get observes the value.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	if !c.store.SetWithTTL(key, stored, int64(len(stored)), ttl) {
		return fmt.Errorf("in-memory cache rejected key %q", key)
	}
	c.store.Wait()
	return nil
}

// Delete removes a cached value
func (c *Cache) Delete(_ context.Context, key string) {
	c.store.Del(key)
}

// Close stops the cache's background goroutines
func (c *Cache) Close() {
	c.store.Close()
}

var _ market.Cache = (*Cache)(nil)
