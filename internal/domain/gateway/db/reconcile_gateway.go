package db

import (
	"context"

	"kanban-api/internal/domain/model"
)

// ReconcileGateway removes children whose parent no longer exists. Every method is idempotent.
type ReconcileGateway interface {
	// SweepBoard removes the tasks of a deleted board and their subtasks.
	// It does nothing while the board still exists.
	SweepBoard(ctx context.Context, boardID string) (model.SweepResult, error)
	// SweepTask removes the subtasks of a deleted task. It does nothing while the task still exists.
	SweepTask(ctx context.Context, taskID string) (model.SweepResult, error)
	// SweepOrphans removes every task without a board, then every subtask without a task.
	SweepOrphans(ctx context.Context) (model.SweepResult, error)
}
