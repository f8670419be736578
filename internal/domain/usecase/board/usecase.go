package board

import (
	"context"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

type UseCase interface {
	Create(ctx context.Context, ownerID string, dto model.CreateBoardDTO) (*entity.Board, error)
	FindAll(ctx context.Context, ownerID string) ([]entity.Board, error)
	// FindTree returns the board with its tasks and their subtasks.
	FindTree(ctx context.Context, ownerID string, boardID string) (*model.BoardTree, error)
	Update(ctx context.Context, ownerID string, boardID string, dto model.UpdateBoardDTO) (*entity.Board, error)
	// Delete removes the board and every descendant.
	Delete(ctx context.Context, ownerID string, boardID string) (*model.CascadeResult, error)
}
