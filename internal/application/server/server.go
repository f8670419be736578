package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"kanban-api/internal/application/controller"
	"kanban-api/internal/application/middleware"
	"kanban-api/internal/domain/usecase/board"
	"kanban-api/internal/domain/usecase/health"
	"kanban-api/internal/domain/usecase/subtask"
	"kanban-api/internal/domain/usecase/task"
	"kanban-api/internal/domain/usecase/user"
	"kanban-api/internal/metrics"
	"kanban-api/pkg/msg"
)

// UseCases groups everything the HTTP layer calls into.
type UseCases struct {
	Board   board.UseCase
	Task    task.UseCase
	Subtask subtask.UseCase
	User    user.UseCase
	Health  health.UseCase
}

// New builds the echo instance with middleware, public routes and the authenticated kanban routes
// mounted under contextPath.
func New(contextPath string, useCases UseCases, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = middleware.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.Metrics(m))
	middleware.SetupRequestLogger(e)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, msg.GetMessage("app.running"))
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group(contextPath)
	controller.NewHealthController(api, useCases.Health).InitHealthRoutes()
	controller.NewUserController(api, useCases.User).InitUserRoutes()

	protected := api.Group("", middleware.Auth(useCases.User))
	controller.NewBoardController(protected, useCases.Board, useCases.Task).InitBoardRoutes()
	controller.NewTaskController(protected, useCases.Task, useCases.Subtask).InitTaskRoutes()
	controller.NewSubtaskController(protected, useCases.Subtask).InitSubtaskRoutes()

	return e
}
