// Package cache stores vendor search results between requests.
package cache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var ErrCacheMiss = errors.New("cache miss")

type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const memoryCleanupInterval = time.Minute

// MemoryClient is an in-process Client, used when no Redis is configured.
type MemoryClient struct {
	items *gocache.Cache
}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{items: gocache.New(gocache.NoExpiration, memoryCleanupInterval)}
}

func (c *MemoryClient) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), b...), nil
}

// Set stores a copy of value. A ttl of zero or less keeps it until deleted.
func (c *MemoryClient) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *MemoryClient) Close() error {
	c.items.Flush()
	return nil
}
