package user

import (
	"context"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/model"
)

type UseCase interface {
	Register(ctx context.Context, dto model.RegisterUserDTO) (*entity.User, error)
	// Login returns a signed bearer token for valid credentials.
	Login(ctx context.Context, dto model.LoginDTO) (string, error)
	// Authenticate validates a bearer token and returns the user id it was issued to.
	Authenticate(token string) (string, error)
}
