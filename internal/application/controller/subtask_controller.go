package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/internal/application/middleware"
	"kanban-api/internal/domain/model"
	"kanban-api/internal/domain/usecase/subtask"
	"kanban-api/pkg/msg"
)

type SubtaskController struct {
	api     *echo.Group
	useCase subtask.UseCase
}

func NewSubtaskController(api *echo.Group, useCase subtask.UseCase) *SubtaskController {
	return &SubtaskController{api: api, useCase: useCase}
}

// InitSubtaskRoutes initializes subtask routes
func (controller *SubtaskController) InitSubtaskRoutes() {
	controller.api.GET("/subtask/:subtaskId", controller.FindByID)
	controller.api.PATCH("/subtask/:subtaskId", controller.Update)
	controller.api.DELETE("/subtask/:subtaskId", controller.Delete)
}

// FindByID godoc
// @Summary Get a subtask
// @Tags subtask
// @Produce json
// @Security BearerAuth
// @Param subtaskId path string true "Subtask ID"
// @Success 200 {object} entity.Subtask "Subtask"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Subtask not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /subtask/{subtaskId} [get]
func (controller *SubtaskController) FindByID(c echo.Context) error {
	found, err := controller.useCase.FindByID(c.Request().Context(), middleware.UserID(c), c.Param("subtaskId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

// Update godoc
// @Summary Update a subtask
// @Description Rename, describe or toggle completion of a subtask
// @Tags subtask
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subtaskId path string true "Subtask ID"
// @Param subtask body model.UpdateSubtaskDTO true "Fields to change"
// @Success 200 {object} model.SubtaskResponse "Updated subtask"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Subtask not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /subtask/{subtaskId} [patch]
func (controller *SubtaskController) Update(c echo.Context) error {
	var dto model.UpdateSubtaskDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}

	updated, err := controller.useCase.Update(c.Request().Context(), middleware.UserID(c), c.Param("subtaskId"), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.SubtaskResponse{Message: msg.GetMessage("subtask.success.updated"), Subtask: updated})
}

// Delete godoc
// @Summary Delete a subtask
// @Tags subtask
// @Produce json
// @Security BearerAuth
// @Param subtaskId path string true "Subtask ID"
// @Success 200 {object} model.MessageResponse "Subtask deleted"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} model.ErrorResponse "Subtask not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /subtask/{subtaskId} [delete]
func (controller *SubtaskController) Delete(c echo.Context) error {
	if err := controller.useCase.Delete(c.Request().Context(), middleware.UserID(c), c.Param("subtaskId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.MessageResponse{Message: msg.GetMessage("subtask.success.deleted")})
}
