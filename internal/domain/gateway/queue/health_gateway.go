package queue

import (
	"context"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/sqs"
)

type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
	RegisterWorker(name string, worker *sqs.Worker)
	UnregisterWorker(name string)
}
