package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

type GormReconcileGateway struct {
	DB *gorm.DB
}

var _ ReconcileGateway = (*GormReconcileGateway)(nil)

func NewGormReconcileGateway(db *gorm.DB) *GormReconcileGateway {
	return &GormReconcileGateway{DB: db}
}

func (gateway *GormReconcileGateway) SweepBoard(ctx context.Context, boardID string) (model.SweepResult, error) {
	var result model.SweepResult
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &entity.Board{}, boardID)
		if err != nil || exists {
			return err
		}

		var ids []string
		if err := tx.Model(&entity.Task{}).Where("board_id = ?", boardID).Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("collect tasks of board %s: %w", boardID, err)
		}
		if len(ids) == 0 {
			return nil
		}

		subtasks := tx.Where("task_id IN ?", ids).Delete(&entity.Subtask{})
		if subtasks.Error != nil {
			return fmt.Errorf("sweep subtasks of board %s: %w", boardID, subtasks.Error)
		}
		tasks := tx.Where("id IN ?", ids).Delete(&entity.Task{})
		if tasks.Error != nil {
			return fmt.Errorf("sweep tasks of board %s: %w", boardID, tasks.Error)
		}

		result = model.SweepResult{TasksDeleted: tasks.RowsAffected, SubtasksDeleted: subtasks.RowsAffected}
		return nil
	})
	return result, err
}

func (gateway *GormReconcileGateway) SweepTask(ctx context.Context, taskID string) (model.SweepResult, error) {
	var result model.SweepResult
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rowExists(tx, &entity.Task{}, taskID)
		if err != nil || exists {
			return err
		}

		subtasks := tx.Where("task_id = ?", taskID).Delete(&entity.Subtask{})
		if subtasks.Error != nil {
			return fmt.Errorf("sweep subtasks of task %s: %w", taskID, subtasks.Error)
		}
		result.SubtasksDeleted = subtasks.RowsAffected
		return nil
	})
	return result, err
}

func (gateway *GormReconcileGateway) SweepOrphans(ctx context.Context) (model.SweepResult, error) {
	var result model.SweepResult
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		boards := tx.Session(&gorm.Session{NewDB: true}).Model(&entity.Board{}).Select("id")
		tasks := tx.Where("board_id NOT IN (?)", boards).Delete(&entity.Task{})
		if tasks.Error != nil {
			return fmt.Errorf("sweep orphan tasks: %w", tasks.Error)
		}

		remaining := tx.Session(&gorm.Session{NewDB: true}).Model(&entity.Task{}).Select("id")
		subtasks := tx.Where("task_id NOT IN (?)", remaining).Delete(&entity.Subtask{})
		if subtasks.Error != nil {
			return fmt.Errorf("sweep orphan subtasks: %w", subtasks.Error)
		}

		result = model.SweepResult{TasksDeleted: tasks.RowsAffected, SubtasksDeleted: subtasks.RowsAffected}
		return nil
	})
	return result, err
}

func rowExists(tx *gorm.DB, table any, id string) (bool, error) {
	var count int64
	if err := tx.Model(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s: %w", id, err)
	}
	return count > 0, nil
}
