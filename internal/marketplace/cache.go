// Package marketplace manages community components: the submission and review
// workflow, and the cached registry of approved components.
package marketplace

import (
	"context"
	"slices"
	"time"

	"github.com/jonathan/portfolio-builder/internal/logging"
	"github.com/jonathan/portfolio-builder/internal/metrics"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultTTL is how long approved components are served from memory
const DefaultTTL = 5 * time.Minute

const approvedKey = "approved"

// Loader fetches the currently approved marketplace components
type Loader interface {
	LoadApproved(ctx context.Context) ([]types.MarketplaceComponentVariant, error)
}

// Cache is a read-through TTL cache over a Loader. Concurrent misses are not
// coalesced: each caller that misses issues its own load.
type Cache struct {
	loader  Loader
	store   *cache.Cache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithMetrics records hits, misses and load failures
func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

// WithLogger sets the cache logger
func WithLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) { c.logger = logging.OrNop(logger) }
}

// NewCache creates a cache over loader. A non-positive ttl means DefaultTTL.
func NewCache(loader Loader, ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		loader: loader,
		store:  cache.New(ttl, 2*ttl),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the approved components, loading them if the cached copy is
// missing or expired. Load failures are not cached.
func (c *Cache) Get(ctx context.Context) ([]types.MarketplaceComponentVariant, error) {
	if cached, found := c.store.Get(approvedKey); found {
		c.metrics.CacheHit()
		return slices.Clone(cached.([]types.MarketplaceComponentVariant)), nil
	}
	c.metrics.CacheMiss()
	return c.Refresh(ctx)
}

// Refresh loads the approved components unconditionally and replaces the cached copy.
func (c *Cache) Refresh(ctx context.Context) ([]types.MarketplaceComponentVariant, error) {
	components, err := c.loader.LoadApproved(ctx)
	if err != nil {
		c.metrics.CacheLoadFailed()
		c.logger.Warn("failed to load marketplace components", zap.Error(err))
		return nil, err
	}
	c.store.Set(approvedKey, slices.Clone(components), cache.DefaultExpiration)
	c.logger.Debug("marketplace cache refreshed", zap.Int("components", len(components)))
	return components, nil
}

// Invalidate drops the cached copy so the next Get reloads.
func (c *Cache) Invalidate() {
	c.store.Delete(approvedKey)
}
