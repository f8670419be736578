package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/redis"
)

const BoardTreeCacheName = "board-tree"

type RedisBoardTreeCache struct {
	cache *redis.Cache
}

var _ BoardTreeCache = (*RedisBoardTreeCache)(nil)

func NewRedisBoardTreeCache(client *redis.Client, ttl time.Duration) *RedisBoardTreeCache {
	opts := redis.DefaultCacheOptions().WithCacheName(BoardTreeCacheName)
	if ttl > 0 {
		opts = opts.WithTTL(ttl)
	}
	return &RedisBoardTreeCache{cache: redis.NewCache(client, opts)}
}

func (c *RedisBoardTreeCache) Get(ctx context.Context, ownerID string, boardID string) (*model.BoardTree, error) {
	var tree model.BoardTree
	err := c.cache.Get(ctx, treeKey(ownerID, boardID), &tree)
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached tree of board %s: %w", boardID, err)
	}
	return &tree, nil
}

func (c *RedisBoardTreeCache) Version(ctx context.Context, ownerID string, boardID string) (int64, error) {
	version, err := c.cache.Version(ctx, treeKey(ownerID, boardID))
	if err != nil {
		return 0, fmt.Errorf("read tree version of board %s: %w", boardID, err)
	}
	return version, nil
}

// Set is a no-op when the tree was evicted after version was read.
func (c *RedisBoardTreeCache) Set(ctx context.Context, tree model.BoardTree, version int64) error {
	if _, err := c.cache.SetIfVersion(ctx, treeKey(tree.OwnerID, tree.ID), tree, version); err != nil {
		return fmt.Errorf("cache tree of board %s: %w", tree.ID, err)
	}
	return nil
}

func (c *RedisBoardTreeCache) Evict(ctx context.Context, ownerID string, boardID string) error {
	if err := c.cache.Invalidate(ctx, treeKey(ownerID, boardID)); err != nil {
		return fmt.Errorf("evict tree of board %s: %w", boardID, err)
	}
	return nil
}

func treeKey(ownerID string, boardID string) string {
	return ownerID + ":" + boardID
}

type RedisHealthCacheGateway struct {
	client *redis.Client
}

var _ HealthCacheGateway = (*RedisHealthCacheGateway)(nil)

func NewRedisHealthCacheGateway(client *redis.Client) *RedisHealthCacheGateway {
	return &RedisHealthCacheGateway{client: client}
}

func (gateway *RedisHealthCacheGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	check := gateway.client.HealthCheck(ctx)
	status := model.StatusUp
	if check.Status != redis.StatusUp {
		status = model.StatusDown
	}
	return model.ComponentHealthStatus{Status: status, Details: check.Details}
}
