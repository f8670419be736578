package db

import (
	"context"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

// TaskGateway persists tasks. A task belongs to the owner of its board, and lookups
// outside that ownership return (nil, nil).
type TaskGateway interface {
	// CreateInBoard inserts task under task.BoardID when that board belongs to ownerID.
	CreateInBoard(ctx context.Context, ownerID string, task entity.Task) (*entity.Task, error)
	FindAllByBoard(ctx context.Context, boardID string) ([]entity.Task, error)
	FindByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Task, error)
	FindTreeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.TaskTree, error)
	UpdateByIDAndOwner(ctx context.Context, id string, ownerID string, dto model.UpdateTaskDTO) (*entity.Task, error)
	// DeleteCascadeByIDAndOwner removes the task and its subtasks in one transaction.
	DeleteCascadeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.CascadeResult, error)
}
