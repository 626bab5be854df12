package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usertasks/internal/domain"
	"usertasks/internal/repository/sqlite"
)

func TestJobRepository_CreateAndGetByID(t *testing.T) {
	repo := sqlite.NewJobRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	job := &domain.Job{
		Title:       "Write report",
		Description: "Quarterly numbers",
		Assignee:    1,
		DueDate:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, job))
	require.NotZero(t, job.ID)

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, int64(1), got.Assignee)
}

func TestJobRepository_GetByID_NotFound(t *testing.T) {
	repo := sqlite.NewJobRepository(setupTestDB(t), testLogger())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobRepository_Update(t *testing.T) {
	repo := sqlite.NewJobRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	job := &domain.Job{Title: "Old", Assignee: 1, DueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, job))

	job.Title = "New"
	job.Description = "Updated"
	require.NoError(t, repo.Update(ctx, job))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Updated", got.Description)
}

func TestJobRepository_Delete_MissingReturnsFalse(t *testing.T) {
	repo := sqlite.NewJobRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	deleted, err := repo.Delete(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, deleted)

	job := &domain.Job{Title: "T", Assignee: 1, DueDate: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, job))

	deleted, err = repo.Delete(ctx, job.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestJobRepository_ExpiredAndActivePartitionAllJobs(t *testing.T) {
	repo := sqlite.NewJobRepository(setupTestDB(t), testLogger())
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	// 13:00 at +05:00 is 08:00 UTC, four hours before the reference instant.
	offsetPast := &domain.Job{
		Title:    "offset past",
		Assignee: 1,
		DueDate:  time.Date(2024, 6, 15, 13, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
	}
	past := &domain.Job{Title: "past", Assignee: 1, DueDate: now.Add(-time.Hour)}
	exact := &domain.Job{Title: "exact", Assignee: 1, DueDate: now}
	future := &domain.Job{Title: "future", Assignee: 1, DueDate: now.Add(time.Hour)}
	for _, j := range []*domain.Job{offsetPast, past, exact, future} {
		require.NoError(t, repo.Create(ctx, j))
	}

	expired, err := repo.GetExpired(ctx, now)
	require.NoError(t, err)
	active, err := repo.GetActive(ctx, now)
	require.NoError(t, err)

	// Strictly-before vs at-or-after: a due date equal to the reference
	// instant counts as active, and the two sets cover every job exactly once.
	require.Len(t, expired, 2)
	expiredTitles := []string{expired[0].Title, expired[1].Title}
	assert.ElementsMatch(t, []string{"offset past", "past"}, expiredTitles)

	require.Len(t, active, 2)
	activeTitles := []string{active[0].Title, active[1].Title}
	assert.ElementsMatch(t, []string{"exact", "future"}, activeTitles)
}

func TestJobRepository_GetByDueDate_IgnoresTimeOfDay(t *testing.T) {
	repo := sqlite.NewJobRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	first := &domain.Job{Title: "first", Assignee: 1, DueDate: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)}
	second := &domain.Job{Title: "second", Assignee: 1, DueDate: time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)}
	// 02:00 on Jan 2 at +05:00 is 21:00 UTC on Jan 1.
	offset := &domain.Job{Title: "offset", Assignee: 1, DueDate: time.Date(2024, 1, 2, 2, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))}
	other := &domain.Job{Title: "other", Assignee: 1, DueDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	for _, j := range []*domain.Job{first, second, offset, other} {
		require.NoError(t, repo.Create(ctx, j))
	}

	jobs, err := repo.GetByDueDate(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	titles := []string{jobs[0].Title, jobs[1].Title, jobs[2].Title}
	assert.ElementsMatch(t, []string{"first", "second", "offset"}, titles)
}
