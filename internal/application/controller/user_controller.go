package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-api/internal/domain/model"
	"kanban-api/internal/domain/usecase/user"
	"kanban-api/pkg/msg"
)

type UserController struct {
	api     *echo.Group
	useCase user.UseCase
}

func NewUserController(api *echo.Group, useCase user.UseCase) *UserController {
	return &UserController{api: api, useCase: useCase}
}

// InitUserRoutes initializes the public account routes
func (controller *UserController) InitUserRoutes() {
	controller.api.POST("/user/register", controller.Register)
	controller.api.POST("/user/login", controller.Login)
}

// Register godoc
// @Summary Register a user
// @Tags user
// @Accept json
// @Produce json
// @Param user body model.RegisterUserDTO true "Account data"
// @Success 201 {object} model.UserResponse "Registered user"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 409 {object} model.ErrorResponse "Email already registered"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /user/register [post]
func (controller *UserController) Register(c echo.Context) error {
	var dto model.RegisterUserDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&dto); err != nil {
		return respondError(c, model.InvalidInput(err.Error()))
	}

	created, err := controller.useCase.Register(c.Request().Context(), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, model.UserResponse{Message: msg.GetMessage("user.success.registered"), User: created})
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for a bearer token
// @Tags user
// @Accept json
// @Produce json
// @Param credentials body model.LoginDTO true "Credentials"
// @Success 200 {object} model.TokenResponse "Bearer token"
// @Failure 400 {object} model.ErrorResponse "Invalid request"
// @Failure 401 {object} model.ErrorResponse "Invalid email or password"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /user/login [post]
func (controller *UserController) Login(c echo.Context) error {
	var dto model.LoginDTO
	if err := c.Bind(&dto); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&dto); err != nil {
		return respondError(c, model.InvalidInput(err.Error()))
	}

	token, err := controller.useCase.Login(c.Request().Context(), dto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, model.TokenResponse{Message: msg.GetMessage("user.success.logged-in"), Token: token})
}
