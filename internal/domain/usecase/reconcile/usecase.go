package reconcile

import (
	"context"

	"kanban-api/internal/domain/model"
)

// UseCase removes children left behind by interrupted or racing cascades.
type UseCase interface {
	SweepOrphans(ctx context.Context) (model.SweepResult, error)
	// HandleEvent re-sweeps the scope of a completed cascade. Replaying an event is harmless.
	HandleEvent(ctx context.Context, event model.AggregateEvent) (model.SweepResult, error)
}
