package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"kanban-api/internal/domain/entity"
	"kanban-api/internal/domain/gateway/db"
	"kanban-api/internal/domain/model"
	"kanban-api/pkg/msg"
)

type userUseCase struct {
	gateway  db.UserGateway
	secret   []byte
	tokenTTL time.Duration
	hashCost int
	now      func() time.Time
}

func NewUserUseCase(gateway db.UserGateway, secret string, tokenTTL time.Duration) UseCase {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &userUseCase{
		gateway:  gateway,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

func (uc *userUseCase) Register(ctx context.Context, dto model.RegisterUserDTO) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if email == "" || dto.Password == "" {
		return nil, model.InvalidInput(msg.GetMessage("user.error.invalid-credentials"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), uc.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := uc.gateway.Create(ctx, entity.User{
		Name:         strings.TrimSpace(dto.Name),
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, model.ErrConflict) {
		return nil, model.Conflict(msg.GetMessage("user.error.email-taken"))
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *userUseCase) Login(ctx context.Context, dto model.LoginDTO) (string, error) {
	invalid := model.Unauthorized(msg.GetMessage("user.error.invalid-credentials"))

	user, err := uc.gateway.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(dto.Email)))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return "", invalid
	}

	now := uc.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (uc *userUseCase) Authenticate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return uc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(uc.now))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", model.Unauthorized(msg.GetMessage("user.error.invalid-token"))
	}
	return claims.Subject, nil
}
