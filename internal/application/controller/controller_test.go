package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"kanban-api/internal/domain/model"
	"kanban-api/pkg/msg"
)

func TestMain(m *testing.M) {
	if err := msg.Load("../../../configs/messages.yml"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "invalid input", err: model.InvalidInput("Board name is required"), wantStatus: http.StatusBadRequest, wantBody: `{"error":"Board name is required"}`},
		{name: "missing identity", err: model.ErrMissingIdentity, wantStatus: http.StatusBadRequest, wantBody: `{"error":"User ID not found in request"}`},
		{name: "not found", err: model.NotFound("Board not found"), wantStatus: http.StatusNotFound, wantBody: `{"error":"Board not found"}`},
		{name: "unauthorized", err: model.Unauthorized("nope"), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"nope"}`},
		{name: "conflict", err: fmt.Errorf("delete: %w", model.Conflict("busy")), wantStatus: http.StatusConflict, wantBody: `{"error":"delete: busy"}`},
		{name: "internal detail is hidden", err: errors.New("pq: relation boards does not exist"), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/board", nil), rec)

			assert.NoError(t, respondError(c, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

type stubHealthUseCase struct {
	response model.HealthResponse
}

func (s stubHealthUseCase) CheckHealth(context.Context) model.HealthResponse {
	return s.response
}

func TestCheckHealthStatusCode(t *testing.T) {
	tests := []struct {
		status     model.HealthStatus
		wantStatus int
	}{
		{status: model.StatusUp, wantStatus: http.StatusOK},
		{status: model.StatusDown, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := echo.New()
			NewHealthController(e.Group(""), stubHealthUseCase{response: model.HealthResponse{Status: tt.status}}).InitHealthRoutes()
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
