package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"usertasks/internal/domain"
	"usertasks/internal/repository"
)

type UserRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewUserRepository(db *gorm.DB, log *logrus.Logger) repository.UserRepository {
	return &UserRepository{db: db, log: log}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.PublicUser, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warnf("user %d not found", id)
			return nil, domain.ErrNotFound
		}
		r.log.Errorf("get user %d: %v", id, err)
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user.Public(), nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.PublicUser, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		r.log.Errorf("list users: %v", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	projected := make([]domain.PublicUser, len(users))
	for i := range users {
		projected[i] = *users[i].Public()
	}
	return projected, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("username %q: %w", user.Username, domain.ErrConflict)
		}
		r.log.Errorf("insert user: %v", err)
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update persists the full record; every field is overwritten.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		r.log.Errorf("update user %d: %v", user.ID, err)
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		r.log.Errorf("delete user %d: %v", id, res.Error)
		return false, fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetByUsername returns the full record for a single username match.
// More than one match means the uniqueness invariant is broken at the
// storage level and is reported as a failure, not a not-found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Limit(2).Find(&users).Error; err != nil {
		r.log.Errorf("get user by username %q: %v", username, err)
		return nil, fmt.Errorf("get user by username %q: %w", username, err)
	}
	switch len(users) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		return &users[0], nil
	default:
		r.log.Errorf("duplicate username %q in storage", username)
		return nil, fmt.Errorf("duplicate username %q in storage", username)
	}
}

func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Warnf("authentication failed for username %q", username)
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		r.log.Warnf("authentication failed for username %q", username)
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		r.log.Errorf("check username %q: %v", username, err)
		return false, fmt.Errorf("check username %q: %w", username, err)
	}
	return count > 0, nil
}
