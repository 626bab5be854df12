package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"usertasks/internal/domain"
	"usertasks/internal/repository"
)

// JobService coordinates job lifecycle operations backed by repositories.
type JobService interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	GetAll(ctx context.Context) ([]domain.Job, error)
	Update(ctx context.Context, id int64, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetExpired(ctx context.Context) ([]domain.Job, error)
	GetActive(ctx context.Context) ([]domain.Job, error)
	GetByDueDate(ctx context.Context, date time.Time) ([]domain.Job, error)
}

type jobService struct {
	jobs  repository.JobRepository
	users repository.UserRepository
	log   *logrus.Logger
}

func NewJobService(jobs repository.JobRepository, users repository.UserRepository, log *logrus.Logger) JobService {
	return &jobService{jobs: jobs, users: users, log: log}
}

// Create validates that the assignee references an existing user before
// inserting the job.
func (s *jobService) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	if job == nil {
		return nil, fmt.Errorf("%w: job is required", domain.ErrInvalidInput)
	}
	if job.Assignee <= 0 {
		s.log.Errorf("job assignee %d is not a valid user id", job.Assignee)
		return nil, fmt.Errorf("%w: assignee is required", domain.ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, job.Assignee); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Errorf("assignee %d does not correspond to an existing user", job.Assignee)
			return nil, fmt.Errorf("%w: assignee %d does not exist", domain.ErrInvalidInput, job.Assignee)
		}
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *jobService) GetAll(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.GetAll(ctx)
}

// Update overwrites title, description, assignee and due date on the stored
// record and persists it whole.
func (s *jobService) Update(ctx context.Context, id int64, job *domain.Job) (*domain.Job, error) {
	if job == nil {
		return nil, fmt.Errorf("%w: job is required", domain.ErrInvalidInput)
	}

	existing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Errorf("job with id %d not found", id)
		}
		return nil, err
	}

	existing.Title = job.Title
	existing.Description = job.Description
	existing.Assignee = job.Assignee
	existing.DueDate = job.DueDate

	if err := s.jobs.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *jobService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.jobs.Delete(ctx, id)
}

func (s *jobService) GetExpired(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.GetExpired(ctx, time.Now().UTC())
}

func (s *jobService) GetActive(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.GetActive(ctx, time.Now().UTC())
}

func (s *jobService) GetByDueDate(ctx context.Context, date time.Time) ([]domain.Job, error) {
	if date.IsZero() {
		s.log.Errorf("invalid due date filter")
		return nil, fmt.Errorf("%w: due date is required", domain.ErrInvalidInput)
	}
	return s.jobs.GetByDueDate(ctx, date)
}
