package server

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type CacheHelper[T any] struct {
	Cache      ResponseCache
	Prefix     string
	Expiration time.Duration
}

func NewCacheHelper[T any](cache ResponseCache, prefix string, expiration time.Duration) *CacheHelper[T] {
	return &CacheHelper[T]{Cache: cache, Prefix: prefix, Expiration: expiration}
}

// Handle fills out from the cache, or from fn when the key is missing. A
// failing cache never fails the request. The returned bool reports a hit.
func (c *CacheHelper[T]) Handle(ctx context.Context, key string, out *T, fn func() T) bool {
	if c == nil || c.Cache == nil {
		*out = fn()
		return false
	}
	key = c.Prefix + key
	if err := c.Cache.Get(ctx, key, out); err == nil {
		return true
	}
	*out = fn()
	if err := c.Cache.Set(ctx, key, out, c.Expiration); err != nil {
		zap.L().Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return false
}
