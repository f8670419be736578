package model

import (
	"time"

	"kanban-api/internal/domain/entity"
)

// BoardTree is a board with its tasks and their subtasks fully expanded.
type BoardTree struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	OwnerID   string     `json:"ownerId"`
	CreatedAt time.Time  `json:"createdDate"`
	UpdatedAt time.Time  `json:"updatedDate"`
	Tasks     []TaskTree `json:"tasks"`
}

// TaskTree is a task with its subtasks expanded.
type TaskTree struct {
	ID          string           `json:"id"`
	BoardID     string           `json:"boardId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdDate"`
	UpdatedAt   time.Time        `json:"updatedDate"`
	Subtasks    []entity.Subtask `json:"subtasks"`
}

// NewTaskTree attaches subtasks to task. A nil slice becomes empty so it encodes as [].
func NewTaskTree(task entity.Task, subtasks []entity.Subtask) TaskTree {
	if subtasks == nil {
		subtasks = []entity.Subtask{}
	}
	return TaskTree{
		ID:          task.ID,
		BoardID:     task.BoardID,
		Name:        task.Name,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Subtasks:    subtasks,
	}
}

// NewBoardTree groups subtasks under the task whose ID matches their TaskID.
// Subtasks pointing at a task outside tasks are dropped.
func NewBoardTree(board entity.Board, tasks []entity.Task, subtasks []entity.Subtask) BoardTree {
	byTask := make(map[string][]entity.Subtask, len(tasks))
	for _, subtask := range subtasks {
		byTask[subtask.TaskID] = append(byTask[subtask.TaskID], subtask)
	}

	trees := make([]TaskTree, 0, len(tasks))
	for _, task := range tasks {
		trees = append(trees, NewTaskTree(task, byTask[task.ID]))
	}

	return BoardTree{
		ID:        board.ID,
		Name:      board.Name,
		OwnerID:   board.OwnerID,
		CreatedAt: board.CreatedAt,
		UpdatedAt: board.UpdatedAt,
		Tasks:     trees,
	}
}
