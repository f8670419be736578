package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/msg"
)

// UserIDKey is the echo context key holding the authenticated caller.
const UserIDKey = "user_id"

// TokenAuthenticator resolves a bearer token into a user id.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// Auth rejects requests without a valid bearer token and stores the caller id in the context.
func Auth(authenticator TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: msg.GetMessage("user.error.missing-token")})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: msg.GetMessage("user.error.invalid-token")})
			}

			userID, err := authenticator.Authenticate(strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: msg.GetMessage("user.error.invalid-token")})
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the caller stored by Auth, or an empty string.
func UserID(c echo.Context) string {
	userID, _ := c.Get(UserIDKey).(string)
	return userID
}
