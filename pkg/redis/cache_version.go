package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// versionTTL bounds how long a generation counter outlives its last Invalidate.
// A fill whose read spans longer than this may be accepted.
const versionTTL = 24 * time.Hour

var setIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == false then
	current = '0'
end
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

func (c *Cache) buildVersionKey(key string) string {
	return c.buildCacheKey(key) + "::version"
}

// Version returns the generation of key. It is 0 until the first Invalidate.
func (c *Cache) Version(ctx context.Context, key string) (int64, error) {
	version, err := c.client.rdb.Get(ctx, c.buildVersionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// Invalidate deletes key and bumps its generation, so a SetIfVersion holding an older generation is dropped.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	versionKey := c.buildVersionKey(key)
	_, err := c.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.buildCacheKey(key))
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		return nil
	})
	return err
}

// SetIfVersion stores value only while the generation of key still equals version.
// It reports whether the value was stored.
func (c *Cache) SetIfVersion(ctx context.Context, key string, value any, version int64) (bool, error) {
	data, err := c.opts.Serializer(value)
	if err != nil {
		return false, fmt.Errorf("failed to serialize value: %w", err)
	}

	stored, err := setIfVersionScript.Run(ctx, c.client.rdb,
		[]string{c.buildVersionKey(key), c.buildCacheKey(key)},
		strconv.FormatInt(version, 10), data, c.ttl().Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}
