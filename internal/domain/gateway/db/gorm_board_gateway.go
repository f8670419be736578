package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

type GormBoardGateway struct {
	DB *gorm.DB
}

var _ BoardGateway = (*GormBoardGateway)(nil)

func NewGormBoardGateway(db *gorm.DB) *GormBoardGateway {
	return &GormBoardGateway{DB: db}
}

func (gateway *GormBoardGateway) Create(ctx context.Context, board entity.Board) (*entity.Board, error) {
	if err := gateway.DB.WithContext(ctx).Create(&board).Error; err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return &board, nil
}

func (gateway *GormBoardGateway) FindAllByOwner(ctx context.Context, ownerID string) ([]entity.Board, error) {
	boards := []entity.Board{}
	err := gateway.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at, id").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("find boards of owner %s: %w", ownerID, err)
	}
	return boards, nil
}

func (gateway *GormBoardGateway) FindByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Board, error) {
	return findOwnedBoard(gateway.DB.WithContext(ctx), id, ownerID)
}

func (gateway *GormBoardGateway) FindTreeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.BoardTree, error) {
	var tree *model.BoardTree
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board, err := findOwnedBoard(tx, id, ownerID)
		if err != nil || board == nil {
			return err
		}

		var tasks []entity.Task
		if err := tx.Where("board_id = ?", board.ID).Order("created_at, id").Find(&tasks).Error; err != nil {
			return fmt.Errorf("find tasks of board %s: %w", board.ID, err)
		}

		subtasks, err := findSubtasksOfTasks(tx, taskIDs(tasks))
		if err != nil {
			return err
		}

		result := model.NewBoardTree(*board, tasks, subtasks)
		tree = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (gateway *GormBoardGateway) UpdateByIDAndOwner(ctx context.Context, id string, ownerID string, dto model.UpdateBoardDTO) (*entity.Board, error) {
	if dto.IsEmpty() {
		return gateway.FindByIDAndOwner(ctx, id, ownerID)
	}

	var updated *entity.Board
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := map[string]any{}
		if dto.Name != nil {
			changes["name"] = *dto.Name
		}

		result := tx.Model(&entity.Board{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(changes)
		if result.Error != nil {
			return fmt.Errorf("update board %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		board, err := findOwnedBoard(tx, id, ownerID)
		updated = board
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteCascadeByIDAndOwner deletes the board first. When nothing matched it returns (nil, nil)
// and leaves tasks and subtasks untouched. The task ids used for the subtask sweep are read from
// the child rows inside the same transaction.
func (gateway *GormBoardGateway) DeleteCascadeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.CascadeResult, error) {
	var cascade *model.CascadeResult
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entity.Board{})
		if deleted.Error != nil {
			return fmt.Errorf("delete board %s: %w", id, deleted.Error)
		}
		if deleted.RowsAffected == 0 {
			return nil
		}

		var ids []string
		if err := tx.Model(&entity.Task{}).Where("board_id = ?", id).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("collect tasks of board %s: %w", id, err)
		}

		tasks := tx.Where("board_id = ?", id).Delete(&entity.Task{})
		if tasks.Error != nil {
			return fmt.Errorf("delete tasks of board %s: %w", id, tasks.Error)
		}

		var subtasksDeleted int64
		if len(ids) > 0 {
			subtasks := tx.Where("task_id IN ?", ids).Delete(&entity.Subtask{})
			if subtasks.Error != nil {
				return fmt.Errorf("delete subtasks of board %s: %w", id, subtasks.Error)
			}
			subtasksDeleted = subtasks.RowsAffected
		}

		if ids == nil {
			ids = []string{}
		}
		cascade = &model.CascadeResult{
			BoardID:         id,
			TaskIDs:         ids,
			TasksDeleted:    tasks.RowsAffected,
			SubtasksDeleted: subtasksDeleted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cascade, nil
}

func findOwnedBoard(db *gorm.DB, id string, ownerID string) (*entity.Board, error) {
	var board entity.Board
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).Take(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find board %s: %w", id, err)
	}
	return &board, nil
}

func findSubtasksOfTasks(db *gorm.DB, ids []string) ([]entity.Subtask, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subtasks []entity.Subtask
	if err := db.Where("task_id IN ?", ids).Order("created_at, id").Find(&subtasks).Error; err != nil {
		return nil, fmt.Errorf("find subtasks: %w", err)
	}
	return subtasks, nil
}

// ownedBoardIDs is the subquery of board ids that belong to ownerID.
func ownedBoardIDs(db *gorm.DB, ownerID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&entity.Board{}).
		Select("id").
		Where("owner_id = ?", ownerID)
}

// ownedTaskIDs is the subquery of task ids whose board belongs to ownerID.
func ownedTaskIDs(db *gorm.DB, ownerID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&entity.Task{}).
		Select("id").
		Where("board_id IN (?)", ownedBoardIDs(db, ownerID))
}

func taskIDs(tasks []entity.Task) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}
