package service

import (
	"context"
	"time"
)

// Cache is the read-through store used for dashboard counters and the
// category list. Implementations must treat a miss as (false, nil).
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	statsCacheKey      = "admin:stats"
	categoriesCacheKey = "categories:all"
)

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error               { return nil }

func orNoop(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}
