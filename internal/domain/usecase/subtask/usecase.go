package subtask

import (
	"context"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

type UseCase interface {
	Create(ctx context.Context, ownerID string, taskID string, dto model.CreateSubtaskDTO) (*entity.Subtask, error)
	FindAllByTask(ctx context.Context, ownerID string, taskID string) ([]entity.Subtask, error)
	FindByID(ctx context.Context, ownerID string, subtaskID string) (*entity.Subtask, error)
	Update(ctx context.Context, ownerID string, subtaskID string, dto model.UpdateSubtaskDTO) (*entity.Subtask, error)
	Delete(ctx context.Context, ownerID string, subtaskID string) error
}
