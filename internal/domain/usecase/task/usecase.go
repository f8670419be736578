package task

import (
	"context"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

// UseCase manages tasks. A task is visible only to the owner of its board.
type UseCase interface {
	Create(ctx context.Context, ownerID string, boardID string, dto model.CreateTaskDTO) (*entity.Task, error)
	FindAllByBoard(ctx context.Context, ownerID string, boardID string) ([]entity.Task, error)
	FindTree(ctx context.Context, ownerID string, taskID string) (*model.TaskTree, error)
	Update(ctx context.Context, ownerID string, taskID string, dto model.UpdateTaskDTO) (*entity.Task, error)
	Delete(ctx context.Context, ownerID string, taskID string) (*model.CascadeResult, error)
}
