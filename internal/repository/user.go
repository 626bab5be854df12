package repository

import (
	"context"

	"usertasks/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Read operations return the PublicUser projection so the password hash
// never leaves the write path.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PublicUser, error)
	GetAll(ctx context.Context) ([]domain.PublicUser, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) (bool, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}
