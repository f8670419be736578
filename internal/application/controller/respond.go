package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kanban-api/internal/application/middleware"
	"kanban-api/internal/domain/model"
	"kanban-api/pkg/log"
	"kanban-api/pkg/msg"
)

// respondError maps domain error classes to status codes. Anything unclassified is logged and answered as a bare 500.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrNotFound):
		return c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrConflict):
		return c.JSON(http.StatusConflict, model.ErrorResponse{Error: err.Error()})
	}

	log.Error(msg.GetMessage("app.error.internal"),
		zap.Error(err),
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.String("user_id", middleware.UserID(c)),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
	)
	return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: msg.GetMessage("app.error.internal")})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg.GetMessage("app.error.invalid-body")})
}

// bindValid decodes the request body into dto and checks its validate tags.
// A failed check is reported with the message under invalidKey.
func bindValid(c echo.Context, dto any, invalidKey string) error {
	if err := c.Bind(dto); err != nil {
		return model.InvalidInput(msg.GetMessage("app.error.invalid-body"))
	}
	if err := c.Validate(dto); err != nil {
		return model.InvalidInput(msg.GetMessage(invalidKey))
	}
	return nil
}
