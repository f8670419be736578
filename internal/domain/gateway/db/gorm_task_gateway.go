package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

type GormTaskGateway struct {
	DB *gorm.DB
}

var _ TaskGateway = (*GormTaskGateway)(nil)

func NewGormTaskGateway(db *gorm.DB) *GormTaskGateway {
	return &GormTaskGateway{DB: db}
}

func (gateway *GormTaskGateway) CreateInBoard(ctx context.Context, ownerID string, task entity.Task) (*entity.Task, error) {
	var created *entity.Task
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board, err := findOwnedBoard(tx, task.BoardID, ownerID)
		if err != nil || board == nil {
			return err
		}
		if err := tx.Create(&task).Error; err != nil {
			return fmt.Errorf("create task in board %s: %w", task.BoardID, err)
		}
		created = &task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (gateway *GormTaskGateway) FindAllByBoard(ctx context.Context, boardID string) ([]entity.Task, error) {
	tasks := []entity.Task{}
	err := gateway.DB.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at, id").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("find tasks of board %s: %w", boardID, err)
	}
	return tasks, nil
}

func (gateway *GormTaskGateway) FindByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Task, error) {
	return findOwnedTask(gateway.DB.WithContext(ctx), id, ownerID)
}

func (gateway *GormTaskGateway) FindTreeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.TaskTree, error) {
	var tree *model.TaskTree
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findOwnedTask(tx, id, ownerID)
		if err != nil || task == nil {
			return err
		}
		subtasks, err := findSubtasksOfTasks(tx, []string{task.ID})
		if err != nil {
			return err
		}
		result := model.NewTaskTree(*task, subtasks)
		tree = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (gateway *GormTaskGateway) UpdateByIDAndOwner(ctx context.Context, id string, ownerID string, dto model.UpdateTaskDTO) (*entity.Task, error) {
	if dto.IsEmpty() {
		return gateway.FindByIDAndOwner(ctx, id, ownerID)
	}

	var updated *entity.Task
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := map[string]any{}
		if dto.Name != nil {
			changes["name"] = *dto.Name
		}
		if dto.Description != nil {
			changes["description"] = *dto.Description
		}

		result := tx.Model(&entity.Task{}).
			Where("id = ? AND board_id IN (?)", id, ownedBoardIDs(tx, ownerID)).
			Updates(changes)
		if result.Error != nil {
			return fmt.Errorf("update task %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		task, err := findOwnedTask(tx, id, ownerID)
		updated = task
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (gateway *GormTaskGateway) DeleteCascadeByIDAndOwner(ctx context.Context, id string, ownerID string) (*model.CascadeResult, error) {
	var cascade *model.CascadeResult
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findOwnedTask(tx, id, ownerID)
		if err != nil || task == nil {
			return err
		}

		deleted := tx.Where("id = ?", task.ID).Delete(&entity.Task{})
		if deleted.Error != nil {
			return fmt.Errorf("delete task %s: %w", id, deleted.Error)
		}
		if deleted.RowsAffected == 0 {
			return nil
		}

		subtasks := tx.Where("task_id = ?", task.ID).Delete(&entity.Subtask{})
		if subtasks.Error != nil {
			return fmt.Errorf("delete subtasks of task %s: %w", id, subtasks.Error)
		}

		cascade = &model.CascadeResult{
			BoardID:         task.BoardID,
			TaskIDs:         []string{task.ID},
			TasksDeleted:    deleted.RowsAffected,
			SubtasksDeleted: subtasks.RowsAffected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cascade, nil
}

func findOwnedTask(db *gorm.DB, id string, ownerID string) (*entity.Task, error) {
	var task entity.Task
	err := db.Where("id = ? AND board_id IN (?)", id, ownedBoardIDs(db, ownerID)).Take(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	return &task, nil
}
