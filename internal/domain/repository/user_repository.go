package repository

import (
	"context"

	"github.com/freshbasket/api/internal/domain/entity"
)

// UserRepository defines the credential-store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
