package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPayloadTTL bounds how long a memoized provider payload stays
// fresh. Finished seasons never change, but a week keeps in-progress
// season stats from going stale.
const DefaultPayloadTTL = 7 * 24 * time.Hour

const keyPrefix = "aurum:resp:"

// RedisCache memoizes raw stats-provider payloads between runs so repeated
// invocations skip the slow upstream fetch. Optional; the pipeline runs
// without it.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects and verifies the connection before returning.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Set stores a payload under the aurum namespace. A zero ttl falls back
// to DefaultPayloadTTL.
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultPayloadTTL
	}
	return rc.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

// Get retrieves a memoized payload. Returns redis.Nil on a miss.
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, keyPrefix+key).Result()
}
