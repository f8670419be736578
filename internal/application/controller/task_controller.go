package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/internal/application/middleware"
	"kanban-api/internal/domain/model"
	"kanban-api/internal/domain/usecase/subtask"
	"kanban-api/internal/domain/usecase/task"
	"kanban-api/pkg/msg"
)

type TaskController struct {
	api            *echo.Group
	useCase        task.UseCase
	subtaskUseCase subtask.UseCase
}

func NewTaskController(api *echo.Group, useCase task.UseCase, subtaskUseCase subtask.UseCase) *TaskController {
	return &TaskController{api: api, useCase: useCase, subtaskUseCase: subtaskUseCase}
}

// InitTaskRoutes initializes task routes, including the subtasks nested under a task
func (controller *TaskController) InitTaskRoutes() {
	controller.api.GET("/task/:taskId", controller.FindTree)
	controller.api.PATCH("/task/:taskId", controller.Update)
	controller.api.DELETE("/task/:taskId", controller.Delete)
	controller.api.POST("/task/:taskId/subtask", controller.CreateSubtask)
	controller.api.GET("/task/:taskId/subtask", controller.FindSubtasks)
}

// FindTree godoc
// @Summary Get a task with its subtasks
// @Tags task
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} model.TaskTree "Task tree"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Task not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /task/{taskId} [get]
func (controller *TaskController) FindTree(c echo.Context) error {
	tree, err := controller.useCase.FindTree(c.Request().Context(), middleware.UserID(c), c.Param("taskId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}

// Update godoc
// @Summary Update a task
// @Tags task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param task body model.UpdateTaskDTO true "Fields to change"
// @Success 200 {object} model.TaskResponse "Updated task"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Task not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /task/{taskId} [patch]
func (controller *TaskController) Update(c echo.Context) error {
	var dto model.UpdateTaskDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.Update(c.Request().Context(), middleware.UserID(c), c.Param("taskId"), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.TaskResponse{Message: msg.GetMessage("task.success.updated"), Task: updated})
}

// Delete godoc
// @Summary Delete a task
// @Description Delete a task together with its subtasks
// @Tags task
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} model.MessageResponse "Task deleted"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Task not found"
// @Failure 409 {object} model.ErrorResponse "Board is being modified"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /task/{taskId} [delete]
func (controller *TaskController) Delete(c echo.Context) error {
	if _, err := controller.useCase.Delete(c.Request().Context(), middleware.UserID(c), c.Param("taskId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: msg.GetMessage("task.success.deleted")})
}

// CreateSubtask godoc
// @Summary Add a subtask to a task
// @Tags subtask
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Param subtask body model.CreateSubtaskDTO true "Subtask creation data"
// @Success 200 {object} model.SubtaskResponse "Created subtask"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Task not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /task/{taskId}/subtask [post]
func (controller *TaskController) CreateSubtask(c echo.Context) error {
	var dto model.CreateSubtaskDTO
	if err := bindValid(c, &dto, "subtask.error.empty-name"); err != nil {
		return respondError(c, err)
	}

	created, err := controller.subtaskUseCase.Create(c.Request().Context(), middleware.UserID(c), c.Param("taskId"), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.SubtaskResponse{Message: msg.GetMessage("subtask.success.created"), Subtask: created})
}

// FindSubtasks godoc
// @Summary List the subtasks of a task
// @Tags subtask
// @Produce json
// @Security BearerAuth
// @Param taskId path string true "Task ID"
// @Success 200 {object} model.SubtaskListResponse "Subtasks of the task"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Task not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /task/{taskId}/subtask [get]
func (controller *TaskController) FindSubtasks(c echo.Context) error {
	subtasks, err := controller.subtaskUseCase.FindAllByTask(c.Request().Context(), middleware.UserID(c), c.Param("taskId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.NewSubtaskListResponse(msg.GetMessage("subtask.success.found"), subtasks))
}
