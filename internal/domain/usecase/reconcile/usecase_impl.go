package reconcile

import (
	"context"

	"go.uber.org/zap"

	"kanban-api/internal/domain/gateway/cache"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/model"
	"kanban-api/internal/metrics"
	"kanban-api/pkg/log"
	"kanban-api/pkg/msg"
)

type reconcileUseCase struct {
	gateway   db.ReconcileGateway
	treeCache cache.BoardTreeCache
	metrics   *metrics.Metrics
}

func NewReconcileUseCase(gateway db.ReconcileGateway, treeCache cache.BoardTreeCache, m *metrics.Metrics) UseCase {
	return &reconcileUseCase{gateway: gateway, treeCache: treeCache, metrics: m}
}

func (uc *reconcileUseCase) SweepOrphans(ctx context.Context) (model.SweepResult, error) {
	result, err := uc.gateway.SweepOrphans(ctx)
	if err != nil {
		return model.SweepResult{}, err
	}
	uc.metrics.RecordSweep(result.TasksDeleted, result.SubtasksDeleted)
	return result, nil
}

func (uc *reconcileUseCase) HandleEvent(ctx context.Context, event model.AggregateEvent) (model.SweepResult, error) {
	var total model.SweepResult

	switch event.Type {
	case model.EventBoardDeleted:
		swept, err := uc.gateway.SweepBoard(ctx, event.BoardID)
		if err != nil {
			return total, err
		}
		total = add(total, swept)
		for _, taskID := range event.TaskIDs {
			swept, err := uc.gateway.SweepTask(ctx, taskID)
			if err != nil {
				return total, err
			}
			total = add(total, swept)
		}
	case model.EventTaskDeleted:
		swept, err := uc.gateway.SweepTask(ctx, event.TaskID)
		if err != nil {
			return total, err
		}
		total = add(total, swept)
	default:
		return total, model.InvalidInput(msg.GetMessage("event.error.unknown-type", event.Type))
	}

	if !total.Empty() {
		uc.metrics.RecordSweep(total.TasksDeleted, total.SubtasksDeleted)
		if err := uc.treeCache.Evict(ctx, event.OwnerID, event.BoardID); err != nil {
			log.Warn(msg.GetMessage("app.error.cache", event.BoardID, err), zap.Error(err))
		}
	}
	return total, nil
}

func add(a, b model.SweepResult) model.SweepResult {
	return model.SweepResult{
		TasksDeleted:    a.TasksDeleted + b.TasksDeleted,
		SubtasksDeleted: a.SubtasksDeleted + b.SubtasksDeleted,
	}
}
