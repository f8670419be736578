package cache

import (
	"context"

	"kanban-api/internal/domain/model"
)

// NoopBoardTreeCache is used when Redis is disabled. Every read is a miss.
type NoopBoardTreeCache struct{}

var (
	_ BoardTreeCache     = NoopBoardTreeCache{}
	_ HealthCacheGateway = NoopBoardTreeCache{}
)

func (NoopBoardTreeCache) Get(context.Context, string, string) (*model.BoardTree, error) {
	return nil, nil
}

func (NoopBoardTreeCache) Version(context.Context, string, string) (int64, error) {
	return 0, nil
}

func (NoopBoardTreeCache) Set(context.Context, model.BoardTree, int64) error {
	return nil
}

func (NoopBoardTreeCache) Evict(context.Context, string, string) error {
	return nil
}

func (NoopBoardTreeCache) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status:  model.StatusDisabled,
		Details: map[string]string{"message": "cache disabled"},
	}
}
