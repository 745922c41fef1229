package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const shopTokenKeyPrefix = "shopify:access_token:"

// ProviderTokenCache retains Shopify admin access tokens obtained during the
// OAuth code exchange, keyed by shop domain, so later provider API calls can
// reuse them instead of forcing a new authorization round trip.
type ProviderTokenCache struct {
	redis *Redis
	ttl   time.Duration
}

// NewProviderTokenCache builds a cache over the shared Redis client.
func NewProviderTokenCache(redis *Redis, ttl time.Duration) *ProviderTokenCache {
	return &ProviderTokenCache{redis: redis, ttl: ttl}
}

// Put stores the access token for a shop. Failures are non-fatal to the
// OAuth flow; callers decide whether to log them.
func (c *ProviderTokenCache) Put(ctx context.Context, shopDomain, accessToken string) error {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil
	}
	return c.redis.Client.Set(ctx, shopTokenKeyPrefix+shopDomain, accessToken, c.ttl).Err()
}

// Get returns the cached access token for a shop, or empty when absent.
func (c *ProviderTokenCache) Get(ctx context.Context, shopDomain string) (string, error) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return "", nil
	}
	val, err := c.redis.Client.Get(ctx, shopTokenKeyPrefix+shopDomain).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}
