package sqlite_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"usertasks/internal/domain"
	"usertasks/internal/repository/sqlite"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestUserRepository_CreateAndGetByID(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "pw"),
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{
		Username:     "alice",
		PasswordHash: hashPassword(t, "pw"),
	}))

	err := repo.Create(ctx, &domain.User{
		Username:     "alice",
		PasswordHash: hashPassword(t, "other"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepository_GetAll_Projects(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "pw"),
	}))
	require.NoError(t, repo.Create(ctx, &domain.User{
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: hashPassword(t, "pw"),
	}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	usernames := []string{all[0].Username, all[1].Username}
	assert.ElementsMatch(t, []string{"alice", "bob"}, usernames)
}

func TestUserRepository_Update_OverwritesAllFields(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "pw"),
	}
	require.NoError(t, repo.Create(ctx, user))

	user.Username = "alice2"
	user.Email = "alice2@example.com"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "alice2@example.com", got.Email)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	user := &domain.User{Username: "alice", PasswordHash: hashPassword(t, "pw")}
	require.NoError(t, repo.Create(ctx, user))

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	created := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "pw"),
	}
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.NotEmpty(t, got.PasswordHash)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: hashPassword(t, "pw")}))

	exists, err = repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_Authenticate(t *testing.T) {
	repo := sqlite.NewUserRepository(setupTestDB(t), testLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{
		Username:     "alice",
		PasswordHash: hashPassword(t, "correct-pw"),
	}))

	user, err := repo.Authenticate(ctx, "alice", "correct-pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = repo.Authenticate(ctx, "alice", "wrong-pw")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = repo.Authenticate(ctx, "nobody", "correct-pw")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
