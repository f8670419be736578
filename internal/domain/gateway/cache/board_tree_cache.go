package cache

import (
	"context"

	"kanban-api/internal/domain/model"
)

// BoardTreeCache keeps expanded board trees per owner. Get returns (nil, nil) on a miss.
//
// Every Evict bumps the entry's version. Set only stores the tree while the version still
// equals the one read by Version before the store was queried, so a fill racing a write is dropped.
type BoardTreeCache interface {
	Get(ctx context.Context, ownerID string, boardID string) (*model.BoardTree, error)
	Version(ctx context.Context, ownerID string, boardID string) (int64, error)
	Set(ctx context.Context, tree model.BoardTree, version int64) error
	Evict(ctx context.Context, ownerID string, boardID string) error
}

type HealthCacheGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
