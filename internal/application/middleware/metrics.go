package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"kanban-api/internal/metrics"
)

// Metrics returns a middleware that records HTTP metrics
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if metrics.ShouldSkipEndpoint(c.Request().URL.Path) {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the response so the recorded status is the real one
				c.Error(err)
			}

			// route pattern, not the raw path
			m.RecordHTTPRequest(c.Request().Method, c.Path(), c.Response().Status, time.Since(start))
			return nil
		}
	}
}
