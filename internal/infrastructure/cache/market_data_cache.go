package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
	"github.com/stockmesh/backend/internal/domain/integration"
	"go.uber.org/zap"
)

// Defaults for the market data cache
const (
	DefaultMarketDataTTL  = 5 * time.Minute
	DefaultMarketDataSize = 1024
	defaultKeyPrefix      = "stockmesh:market:"
)

// MarketDataSource is the upstream the cache reads through to
type MarketDataSource interface {
	FetchMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) ([]byte, error)
}

type cachedPayload struct {
	raw       []byte
	expiresAt time.Time
}

// MarketDataCacheStats holds hit/miss counters
type MarketDataCacheStats struct {
	L1Hits   int64 `json:"l1_hits"`
	L1Misses int64 `json:"l1_misses"`
	L2Hits   int64 `json:"l2_hits"`
	L2Misses int64 `json:"l2_misses"`
	L1Size   int   `json:"l1_size"`
}

// MarketDataCache is a read-through cache for raw marketplace payloads.
// L1: in-process LRU with per-entry expiry
// L2: Redis, shared across instances (optional)
// Upstream errors are never cached.
type MarketDataCache struct {
	upstream  MarketDataSource
	l1        *lru.Cache
	l2        *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
	now       func() time.Time

	l1Hits   int64
	l1Misses int64
	l2Hits   int64
	l2Misses int64
}

// MarketDataCacheOption is a functional option for configuring the cache
type MarketDataCacheOption func(*MarketDataCache)

// WithRedis enables the shared L2 tier
func WithRedis(client *redis.Client) MarketDataCacheOption {
	return func(c *MarketDataCache) {
		c.l2 = client
	}
}

// WithTTL sets the entry lifetime for both tiers
func WithTTL(ttl time.Duration) MarketDataCacheOption {
	return func(c *MarketDataCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) MarketDataCacheOption {
	return func(c *MarketDataCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) MarketDataCacheOption {
	return func(c *MarketDataCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) MarketDataCacheOption {
	return func(c *MarketDataCache) {
		c.now = now
	}
}

// NewMarketDataCache creates a cache holding up to size entries in L1
func NewMarketDataCache(upstream MarketDataSource, size int, opts ...MarketDataCacheOption) (*MarketDataCache, error) {
	if upstream == nil {
		return nil, errors.New("cache: upstream source is required")
	}
	if size <= 0 {
		size = DefaultMarketDataSize
	}
	l1, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cache: create lru: %w", err)
	}

	c := &MarketDataCache{
		upstream:  upstream,
		l1:        l1,
		ttl:       DefaultMarketDataTTL,
		keyPrefix: defaultKeyPrefix,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchMarketData returns the raw payload from L1, then L2, then upstream
func (c *MarketDataCache) FetchMarketData(ctx context.Context, channel integration.ChannelCode, itemID string) ([]byte, error) {
	key := c.key(channel, itemID)

	if raw, ok := c.getL1(key); ok {
		atomic.AddInt64(&c.l1Hits, 1)
		return raw, nil
	}
	atomic.AddInt64(&c.l1Misses, 1)

	if c.l2 != nil {
		raw, err := c.l2.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			atomic.AddInt64(&c.l2Hits, 1)
			c.setL1(key, raw)
			return raw, nil
		case errors.Is(err, redis.Nil):
			atomic.AddInt64(&c.l2Misses, 1)
		default:
			atomic.AddInt64(&c.l2Misses, 1)
			c.logger.Warn("L2 cache read failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}

	raw, err := c.upstream.FetchMarketData(ctx, channel, itemID)
	if err != nil {
		return nil, err
	}

	c.setL1(key, raw)
	if c.l2 != nil {
		if err := c.l2.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("L2 cache write failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return raw, nil
}

// Invalidate drops the cached payload of an item on a channel from both tiers
func (c *MarketDataCache) Invalidate(ctx context.Context, channel integration.ChannelCode, itemID string) error {
	key := c.key(channel, itemID)
	c.l1.Remove(key)
	if c.l2 == nil {
		return nil
	}
	if err := c.l2.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", key, err)
	}
	return nil
}

// Stats returns the current hit/miss counters
func (c *MarketDataCache) Stats() MarketDataCacheStats {
	return MarketDataCacheStats{
		L1Hits:   atomic.LoadInt64(&c.l1Hits),
		L1Misses: atomic.LoadInt64(&c.l1Misses),
		L2Hits:   atomic.LoadInt64(&c.l2Hits),
		L2Misses: atomic.LoadInt64(&c.l2Misses),
		L1Size:   c.l1.Len(),
	}
}

func (c *MarketDataCache) key(channel integration.ChannelCode, itemID string) string {
	return c.keyPrefix + string(channel) + ":" + itemID
}

func (c *MarketDataCache) getL1(key string) ([]byte, bool) {
	v, ok := c.l1.Get(key)
	if !ok {
		return nil, false
	}
	entry := v.(cachedPayload)
	if !c.now().Before(entry.expiresAt) {
		c.l1.Remove(key)
		return nil, false
	}
	return entry.raw, true
}

func (c *MarketDataCache) setL1(key string, raw []byte) {
	c.l1.Add(key, cachedPayload{raw: raw, expiresAt: c.now().Add(c.ttl)})
}
