package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const transferPrefix = "bridge:transfer:"

// IdempotencyCache implements ports.IdempotencyCache. It holds serialized
// transfer outcomes keyed by tenant and transfer_id so replays skip the
// database.
type IdempotencyCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewIdempotencyCache creates a new Redis-backed transfer replay cache.
func NewIdempotencyCache(client goredis.UniversalClient) *IdempotencyCache {
	return &IdempotencyCache{
		client: client,
		prefix: transferPrefix,
	}
}

// Get returns the cached outcome, or nil, nil on a miss.
func (c *IdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis transfer get: %w", err)
	}
	return val, nil
}

// Set stores an outcome for ttl. The journal stays authoritative, so an
// overwrite with the same outcome is harmless.
func (c *IdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis transfer set: %w", err)
	}
	return nil
}
