package db

import (
	"context"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

// BoardGateway persists boards. Every lookup is filtered by owner; a board that exists
// for another owner is reported exactly like a missing one, as (nil, nil).
type BoardGateway interface {
	Create(ctx context.Context, board entity.Board) (*entity.Board, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]entity.Board, error)
	FindByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Board, error)
	// FindTreeByIDAndOwner returns the board with its tasks and their subtasks.
	FindTreeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.BoardTree, error)
	UpdateByIDAndOwner(ctx context.Context, id string, ownerID string, dto model.UpdateBoardDTO) (*entity.Board, error)
	// DeleteCascadeByIDAndOwner removes the board, its tasks and their subtasks in one transaction.
	DeleteCascadeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.CascadeResult, error)
}
