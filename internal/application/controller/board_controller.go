package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/internal/application/middleware"
	"kanban-api/internal/domain/model"
	"kanban-api/internal/domain/usecase/board"
	"kanban-api/internal/domain/usecase/task"
	"kanban-api/pkg/msg"
)

type BoardController struct {
	api         *echo.Group
	useCase     board.UseCase
	taskUseCase task.UseCase
}

func NewBoardController(api *echo.Group, useCase board.UseCase, taskUseCase task.UseCase) *BoardController {
	return &BoardController{api: api, useCase: useCase, taskUseCase: taskUseCase}
}

// InitBoardRoutes initializes board routes, including the tasks nested under a board
func (controller *BoardController) InitBoardRoutes() {
	controller.api.POST("/board", controller.Create)
	controller.api.GET("/board", controller.FindAll)
	controller.api.GET("/board/:boardId", controller.FindTree)
	controller.api.PATCH("/board/:boardId", controller.Update)
	controller.api.DELETE("/board/:boardId", controller.Delete)
	controller.api.POST("/board/:boardId/task", controller.CreateTask)
	controller.api.GET("/board/:boardId/task", controller.FindTasks)
}

// Create godoc
// @Summary Create a board
// @Description Create a board owned by the authenticated user
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param board body model.CreateBoardDTO true "Board creation data"
// @Success 200 {object} model.BoardResponse "Created board"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /board [post]
func (controller *BoardController) Create(c echo.Context) error {
	var dto model.CreateBoardDTO
	if err := bindValid(c, &dto, "board.error.empty-name"); err != nil {
		return respondError(c, err)
	}

	created, err := controller.useCase.Create(c.Request().Context(), middleware.UserID(c), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.BoardResponse{Message: msg.GetMessage("board.success.created"), Board: created})
}

// FindAll godoc
// @Summary List boards
// @Description List the boards owned by the authenticated user
// @Tags board
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.BoardListResponse "Boards of the caller"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /board [get]
func (controller *BoardController) FindAll(c echo.Context) error {
	boards, err := controller.useCase.FindAll(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.NewBoardListResponse(msg.GetMessage("board.success.found"), boards))
}

// FindTree godoc
// @Summary Get a board with its tasks and subtasks
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param boardId path string true "Board ID"
// @Success 200 {object} model.BoardTree "Board tree"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Board not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /board/{boardId} [get]
func (controller *BoardController) FindTree(c echo.Context) error {
	tree, err := controller.useCase.FindTree(c.Request().Context(), middleware.UserID(c), c.Param("boardId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}

// Update godoc
// @Summary Rename a board
// @Tags board
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boardId path string true "Board ID"
// @Param board body model.UpdateBoardDTO true "Fields to change"
// @Success 200 {object} model.BoardResponse "Updated board"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Board not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /board/{boardId} [patch]
func (controller *BoardController) Update(c echo.Context) error {
	var dto model.UpdateBoardDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.Update(c.Request().Context(), middleware.UserID(c), c.Param("boardId"), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.BoardResponse{Message: msg.GetMessage("board.success.updated"), Board: updated})
}

// Delete godoc
// @Summary Delete a board
// @Description Delete a board together with its tasks and their subtasks
// @Tags board
// @Produce json
// @Security BearerAuth
// @Param boardId path string true "Board ID"
// @Success 200 {object} model.MessageResponse "Board deleted"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Board not found"
// @Failure 409 {object} model.ErrorResponse "Board is being modified"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /board/{boardId} [delete]
func (controller *BoardController) Delete(c echo.Context) error {
	if _, err := controller.useCase.Delete(c.Request().Context(), middleware.UserID(c), c.Param("boardId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: msg.GetMessage("board.success.deleted")})
}

// CreateTask godoc
// @Summary Add a task to a board
// @Tags task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param boardId path string true "Board ID"
// @Param task body model.CreateTaskDTO true "Task creation data"
// @Success 200 {object} model.TaskResponse "Created task"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Board not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /board/{boardId}/task [post]
func (controller *BoardController) CreateTask(c echo.Context) error {
	var dto model.CreateTaskDTO
	if err := bindValid(c, &dto, "task.error.empty-name"); err != nil {
		return respondError(c, err)
	}

	created, err := controller.taskUseCase.Create(c.Request().Context(), middleware.UserID(c), c.Param("boardId"), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.TaskResponse{Message: msg.GetMessage("task.success.created"), Task: created})
}

// FindTasks godoc
// @Summary List the tasks of a board
// @Tags task
// @Produce json
// @Security BearerAuth
// @Param boardId path string true "Board ID"
// @Success 200 {object} model.TaskListResponse "Tasks of the board"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Board not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /board/{boardId}/task [get]
func (controller *BoardController) FindTasks(c echo.Context) error {
	tasks, err := controller.taskUseCase.FindAllByBoard(c.Request().Context(), middleware.UserID(c), c.Param("boardId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.NewTaskListResponse(msg.GetMessage("task.success.found"), tasks))
}
