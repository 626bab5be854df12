package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"usertasks/internal/domain"
	"usertasks/internal/repository"
)

type JobRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewJobRepository(db *gorm.DB, log *logrus.Logger) repository.JobRepository {
	return &JobRepository{db: db, log: log}
}

func (r *JobRepository) GetAll(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).Find(&jobs).Error; err != nil {
		r.log.Errorf("list jobs: %v", err)
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warnf("job %d not found", id)
			return nil, domain.ErrNotFound
		}
		r.log.Errorf("get job %d: %v", id, err)
		return nil, fmt.Errorf("get job %d: %w", id, err)
	}
	return &job, nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	// Due dates are stored as text, so all values are normalized to UTC to
	// keep the date comparisons instant-based.
	job.DueDate = job.DueDate.UTC()
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		r.log.Errorf("insert job: %v", err)
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Update persists the full record; the caller must pass a fully populated job.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	job.DueDate = job.DueDate.UTC()
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		r.log.Errorf("update job %d: %v", job.ID, err)
		return fmt.Errorf("update job %d: %w", job.ID, err)
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Job{}, id)
	if res.Error != nil {
		r.log.Errorf("delete job %d: %v", id, res.Error)
		return false, fmt.Errorf("delete job %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *JobRepository) GetExpired(ctx context.Context, now time.Time) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).Where("due_date < ?", now.UTC()).Find(&jobs).Error; err != nil {
		r.log.Errorf("list expired jobs: %v", err)
		return nil, fmt.Errorf("list expired jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) GetActive(ctx context.Context, now time.Time) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).Where("due_date >= ?", now.UTC()).Find(&jobs).Error; err != nil {
		r.log.Errorf("list active jobs: %v", err)
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	return jobs, nil
}

// GetByDueDate matches on the date component only; time of day is ignored.
// The day window is evaluated in UTC, matching how due dates are stored.
func (r *JobRepository) GetByDueDate(ctx context.Context, date time.Time) ([]domain.Job, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var jobs []domain.Job
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date < ?", start, end).
		Find(&jobs).Error; err != nil {
		r.log.Errorf("list jobs due %s: %v", start.Format("2006-01-02"), err)
		return nil, fmt.Errorf("list jobs due %s: %w", start.Format("2006-01-02"), err)
	}
	return jobs, nil
}
