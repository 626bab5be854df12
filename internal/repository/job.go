package repository

import (
	"context"
	"time"

	"usertasks/internal/domain"
)

// JobRepository exposes persistence operations for Job records.
// GetExpired and GetActive take an explicit reference time; together they
// partition all jobs at that instant.
type JobRepository interface {
	GetAll(ctx context.Context) ([]domain.Job, error)
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id int64) (bool, error)
	GetExpired(ctx context.Context, now time.Time) ([]domain.Job, error)
	GetActive(ctx context.Context, now time.Time) ([]domain.Job, error)
	GetByDueDate(ctx context.Context, date time.Time) ([]domain.Job, error)
}
