package server

import (
	"context"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

type ResponseCache interface {
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type LocalEntry struct {
	Expires time.Time
	Data    []byte
}

// Cache keeps encoded values in redis with a short lived local copy in
// front of it.
type Cache struct {
	Addr     string
	Password string
	DB       int
	client   *redis.Client
	mu       sync.RWMutex
	memCache map[string]LocalEntry
	localTTL time.Duration
}

func NewCache(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{
		Addr:     addr,
		Password: password,
		DB:       db,
		client:   rdb,
		memCache: make(map[string]LocalEntry),
		localTTL: 10 * time.Second,
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) getLocal(key string) ([]byte, bool) {
	c.mu.RLock()
	local, found := c.memCache[key]
	c.mu.RUnlock()
	if !found {
		return nil, false
	}
	if local.Expires.Before(time.Now()) {
		c.mu.Lock()
		delete(c.memCache, key)
		c.mu.Unlock()
		return nil, false
	}
	return local.Data, true
}

func (c *Cache) setLocal(key string, data []byte, expiration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memCache[key] = LocalEntry{Expires: time.Now().Add(min(expiration, c.localTTL)), Data: data}
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	if data, ok := c.getLocal(key); ok {
		return sonic.Unmarshal(data, out)
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err = sonic.Unmarshal(data, out); err != nil {
		return err
	}
	c.setLocal(key, data, c.localTTL)
	return nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	c.setLocal(key, data, expiration)
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
