package queue

import (
	"context"

	"kanban-api/internal/domain/model"
)

// EventPublisher announces completed aggregate deletions.
type EventPublisher interface {
	Publish(ctx context.Context, event model.AggregateEvent) error
}
