// Package cache is a small JSON cache on top of Redis. A disabled cache
// answers every lookup with a miss and accepts every write.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blogdesk:"

type RedisCache struct {
	client *redis.Client
}

// New connects to redisURL (redis://[:password@]host:port/db) and verifies
// the connection. password, when set, overrides the one in the URL.
func New(redisURL, password string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: rdb}, nil
}

// Disabled returns a cache that never stores anything.
func Disabled() *RedisCache {
	return &RedisCache{}
}

func (c *RedisCache) enabled() bool {
	return c != nil && c.client != nil
}

// Get decodes the cached value for key into dest and reports whether it was found.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// a value we cannot decode is as good as a miss
		c.client.Del(ctx, keyPrefix+key)
		return false, nil
	}
	return true, nil
}

// Set stores value as JSON. A zero ttl skips the write.
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.enabled() || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if !c.enabled() || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return c.client.Del(ctx, prefixed...).Err()
}

func (c *RedisCache) Close() error {
	if !c.enabled() {
		return nil
	}
	return c.client.Close()
}
