package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

type GormSubtaskGateway struct {
	DB *gorm.DB
}

var _ SubtaskGateway = (*GormSubtaskGateway)(nil)

func NewGormSubtaskGateway(db *gorm.DB) *GormSubtaskGateway {
	return &GormSubtaskGateway{DB: db}
}

func (gateway *GormSubtaskGateway) CreateInTask(ctx context.Context, ownerID string, subtask entity.Subtask) (*entity.Subtask, error) {
	var created *entity.Subtask
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findOwnedTask(tx, subtask.TaskID, ownerID)
		if err != nil || task == nil {
			return err
		}
		if err := tx.Create(&subtask).Error; err != nil {
			return fmt.Errorf("create subtask in task %s: %w", subtask.TaskID, err)
		}
		created = &subtask
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (gateway *GormSubtaskGateway) FindAllByTask(ctx context.Context, taskID string) ([]entity.Subtask, error) {
	subtasks := []entity.Subtask{}
	err := gateway.DB.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at, id").
		Find(&subtasks).Error
	if err != nil {
		return nil, fmt.Errorf("find subtasks of task %s: %w", taskID, err)
	}
	return subtasks, nil
}

func (gateway *GormSubtaskGateway) FindByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Subtask, error) {
	return findOwnedSubtask(gateway.DB.WithContext(ctx), id, ownerID)
}

func (gateway *GormSubtaskGateway) UpdateByIDAndOwner(ctx context.Context, id string, ownerID string, dto model.UpdateSubtaskDTO) (*entity.Subtask, error) {
	if dto.IsEmpty() {
		return gateway.FindByIDAndOwner(ctx, id, ownerID)
	}

	var updated *entity.Subtask
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := map[string]any{}
		if dto.Name != nil {
			changes["name"] = *dto.Name
		}
		if dto.Description != nil {
			changes["description"] = *dto.Description
		}
		if dto.Completed != nil {
			changes["completed"] = *dto.Completed
		}

		result := tx.Model(&entity.Subtask{}).
			Where("id = ? AND task_id IN (?)", id, ownedTaskIDs(tx, ownerID)).
			Updates(changes)
		if result.Error != nil {
			return fmt.Errorf("update subtask %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		subtask, err := findOwnedSubtask(tx, id, ownerID)
		updated = subtask
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (gateway *GormSubtaskGateway) DeleteByIDAndOwner(ctx context.Context, id string, ownerID string) (*entity.Subtask, error) {
	var deleted *entity.Subtask
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subtask, err := findOwnedSubtask(tx, id, ownerID)
		if err != nil || subtask == nil {
			return err
		}
		result := tx.Where("id = ?", subtask.ID).Delete(&entity.Subtask{})
		if result.Error != nil {
			return fmt.Errorf("delete subtask %s: %w", id, result.Error)
		}
		if result.RowsAffected > 0 {
			deleted = subtask
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func findOwnedSubtask(db *gorm.DB, id string, ownerID string) (*entity.Subtask, error) {
	var subtask entity.Subtask
	err := db.Where("id = ? AND task_id IN (?)", id, ownedTaskIDs(db, ownerID)).Take(&subtask).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subtask %s: %w", id, err)
	}
	return &subtask, nil
}
