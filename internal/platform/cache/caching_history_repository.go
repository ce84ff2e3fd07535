package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/feature/quotes/usecase"
)

// CachingHistoryRepository decorates a MarketRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. History series are re-fetched per
// timeframe selection, so a short TTL keeps the upstream call volume down
// without serving stale charts.
type CachingHistoryRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MarketRepository = (*CachingHistoryRepository)(nil)

// NewCachingHistoryRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "history".
func NewCachingHistoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingHistoryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "history"
	}
	return &CachingHistoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetSeries retrieves a history series, checking cache first then falling
// back to the upstream provider.
func (c *CachingHistoryRepository) GetSeries(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetSeries(ctx, symbol, timeframe)
	}

	key := c.cacheKey(symbol, timeframe)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Series
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the upstream provider
	out, err := c.inner.GetSeries(ctx, symbol, timeframe)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingHistoryRepository) cacheKey(symbol string, timeframe entity.Timeframe) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(symbol), safe(string(timeframe)))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
