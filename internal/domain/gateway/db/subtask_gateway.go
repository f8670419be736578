package db

import (
	"context"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

// SubtaskGateway persists subtasks. Ownership is resolved through the task's board.
type SubtaskGateway interface {
	// CreateInTask inserts subtask under subtask.TaskID when that task belongs to ownerID.
	CreateInTask(ctx context.Context, ownerID string, subtask entity.Subtask) (*entity.Subtask, error)
	FindAllByTask(ctx context.Context, taskID string) ([]entity.Subtask, error)
	FindByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Subtask, error)
	UpdateByIDAndOwner(ctx context.Context, id string, ownerID string, dto model.UpdateSubtaskDTO) (*entity.Subtask, error)
	// DeleteByIDAndOwner returns the deleted row, or nil when nothing matched.
	DeleteByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Subtask, error)
}
