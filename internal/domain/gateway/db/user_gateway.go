package db

import (
	"context"

	"kanban-api/internal/domain/entity"
)

type UserGateway interface {
	// Create returns model.ErrConflict when the email is already registered.
	Create(ctx context.Context, user entity.User) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
