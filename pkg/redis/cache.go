package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CacheOptions configures a named cache.
type CacheOptions struct {
	// CacheName prefixes every key as CacheName::key and selects the TTL from Config.CacheTTLs.
	CacheName string
	// TTL is used when the client configuration has no entry for CacheName.
	TTL          time.Duration
	Serializer   func(any) ([]byte, error)
	Deserializer func([]byte, any) error
}

// DefaultCacheOptions returns JSON serialization with a one hour TTL.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL:          time.Hour,
		Serializer:   json.Marshal,
		Deserializer: json.Unmarshal,
	}
}

func (co *CacheOptions) WithCacheName(name string) *CacheOptions {
	co.CacheName = name
	return co
}

func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	co.TTL = ttl
	return co
}

// Cache stores serialized values under a shared key prefix.
type Cache struct {
	client *Client
	opts   *CacheOptions
}

func NewCache(client *Client, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = DefaultCacheOptions()
	}
	if opts.Serializer == nil {
		opts.Serializer = json.Marshal
	}
	if opts.Deserializer == nil {
		opts.Deserializer = json.Unmarshal
	}
	return &Cache{client: client, opts: opts}
}

func (c *Cache) ttl() time.Duration {
	if c.opts.CacheName != "" {
		if ttl, ok := c.client.config.CacheTTLs[c.opts.CacheName]; ok {
			return ttl
		}
	}
	if c.opts.TTL > 0 {
		return c.opts.TTL
	}
	return c.client.config.DefaultCacheTTL
}

func (c *Cache) buildCacheKey(key string) string {
	if c.opts.CacheName != "" {
		return c.opts.CacheName + "::" + key
	}
	return key
}

// Get decodes the cached value into dest. A miss returns ErrKeyNotFound.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.GetBytes(ctx, c.buildCacheKey(key))
	if err != nil {
		return err
	}
	return c.opts.Deserializer(data, dest)
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := c.opts.Serializer(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return c.client.Set(ctx, c.buildCacheKey(key), data, c.ttl())
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = c.buildCacheKey(key)
	}
	return c.client.Delete(ctx, fullKeys...)
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, c.buildCacheKey(key))
	return count > 0, err
}
