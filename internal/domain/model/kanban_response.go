package model

import "kanban-api/internal/domain/entity"

type BoardResponse struct {
	Message string        `json:"message"`
	Board   *entity.Board `json:"board"`
}

type BoardListResponse struct {
	Message string         `json:"message"`
	Boards  []entity.Board `json:"boards"`
}

type TaskResponse struct {
	Message string       `json:"message"`
	Task    *entity.Task `json:"task"`
}

type TaskListResponse struct {
	Message string        `json:"message"`
	Tasks   []entity.Task `json:"tasks"`
}

type SubtaskResponse struct {
	Message string          `json:"message"`
	Subtask *entity.Subtask `json:"subtask"`
}

type SubtaskListResponse struct {
	Message  string           `json:"message"`
	Subtasks []entity.Subtask `json:"subtasks"`
}

type UserResponse struct {
	Message string       `json:"message"`
	User    *entity.User `json:"user"`
}

type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// NewBoardListResponse keeps an empty listing encoded as [] rather than null.
func NewBoardListResponse(message string, boards []entity.Board) BoardListResponse {
	if boards == nil {
		boards = []entity.Board{}
	}
	return BoardListResponse{Message: message, Boards: boards}
}

func NewTaskListResponse(message string, tasks []entity.Task) TaskListResponse {
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return TaskListResponse{Message: message, Tasks: tasks}
}

func NewSubtaskListResponse(message string, subtasks []entity.Subtask) SubtaskListResponse {
	if subtasks == nil {
		subtasks = []entity.Subtask{}
	}
	return SubtaskListResponse{Message: message, Subtasks: subtasks}
}
