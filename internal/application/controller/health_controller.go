package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/internal/domain/model"
	"kanban-api/internal/domain/usecase/health"
)

type HealthController struct {
	api     *echo.Group
	useCase health.UseCase
}

func NewHealthController(api *echo.Group, useCase health.UseCase) *HealthController {
	return &HealthController{api: api, useCase: useCase}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth)
}

// CheckHealth godoc
// @Summary Health check
// @Description Report database, cache and queue status
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse "Service is healthy"
// @Failure 503 {object} model.HealthResponse "A required component is down"
// @Router /health [get]
func (controller *HealthController) CheckHealth(c echo.Context) error {
	response := controller.useCase.CheckHealth(c.Request().Context())
	if response.Status != model.StatusUp {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}
