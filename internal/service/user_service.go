package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"usertasks/internal/domain"
	"usertasks/internal/repository"
)

// UserService describes user lifecycle operations.
type UserService interface {
	Create(ctx context.Context, username, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.PublicUser, error)
	GetAll(ctx context.Context) ([]domain.PublicUser, error)
	Update(ctx context.Context, id int64, username, email, password string) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
	log   *logrus.Logger
}

func NewUserService(users repository.UserRepository, log *logrus.Logger) UserService {
	return &userService{users: users, log: log}
}

func (s *userService) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Errorf("user with username %q already exists", username)
		return nil, fmt.Errorf("username %q: %w", username, domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.PublicUser, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetAll(ctx context.Context) ([]domain.PublicUser, error) {
	return s.users.GetAll(ctx)
}

// Update overwrites username and email unconditionally; a non-empty password
// is re-hashed, an empty one keeps the stored hash.
func (s *userService) Update(ctx context.Context, id int64, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		s.log.Errorf("user with username %q already exists", username)
		return nil, fmt.Errorf("username %q: %w", username, domain.ErrConflict)
	}

	user, err := s.loadByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Errorf("user with id %d not found", id)
		}
		return nil, err
	}

	user.Username = username
	user.Email = email
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.users.Delete(ctx, id)
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.users.Authenticate(ctx, username, password)
}

// loadByID fetches the full record for mutation. GetByID only exposes the
// read projection, so the full row is resolved through the unique username.
func (s *userService) loadByID(ctx context.Context, id int64) (*domain.User, error) {
	projected, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByUsername(ctx, projected.Username)
	if err != nil {
		return nil, err
	}
	return user, nil
}
