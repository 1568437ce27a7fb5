package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage/sqlite"
)

func sessionFixture(id string, createdAt time.Time) model.Session {
	return model.Session{
		ID:            id,
		TaskID:        "task-1",
		TaskTitle:     "Test task",
		Status:        model.SessionStatusActive,
		FlowIndex:     3,
		ItemCount:     10,
		AnsweredCount: 2,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC().Truncate(time.Second)

	s := sessionFixture("id-1", now)
	require.NoError(t, repo.CreateSession(ctx, s))

	got, err := repo.GetSession(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", got.TaskID)
	assert.Equal(t, "Test task", got.TaskTitle)
	assert.Equal(t, model.SessionStatusActive, got.Status)
	assert.Equal(t, 3, got.FlowIndex)
	assert.Equal(t, 10, got.ItemCount)
	assert.Equal(t, 2, got.AnsweredCount)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.Nil(t, got.CompletedAt)

	// Update to completed.
	completedAt := now.Add(5 * time.Minute)
	s.Status = model.SessionStatusCompleted
	s.FlowIndex = 9
	s.AnsweredCount = 8
	s.UpdatedAt = completedAt
	s.CompletedAt = &completedAt
	require.NoError(t, repo.UpdateSession(ctx, s))

	got, err = repo.GetSession(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, got.Status)
	assert.Equal(t, 9, got.FlowIndex)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))

	// Delete.
	require.NoError(t, repo.DeleteSession(ctx, "id-1"))
	_, err = repo.GetSession(ctx, "id-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = repo.UpdateSession(ctx, sessionFixture("missing", time.Now().UTC()))
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = repo.DeleteSession(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRepositoryListOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.CreateSession(ctx, sessionFixture("old", now.Add(-2*time.Hour))))
	require.NoError(t, repo.CreateSession(ctx, sessionFixture("newest", now)))
	require.NoError(t, repo.CreateSession(ctx, sessionFixture("mid", now.Add(-1*time.Hour))))

	sessions, err := repo.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	assert.Equal(t, "newest", sessions[0].ID)
	assert.Equal(t, "mid", sessions[1].ID)
	assert.Equal(t, "old", sessions[2].ID)
}

func TestRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	now := time.Now().UTC().Truncate(time.Second)

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: dbPath, Logger: log.Noop})
	require.NoError(t, err)
	require.NoError(t, repo.CreateSession(ctx, sessionFixture("id-1", now)))
	require.NoError(t, repo.Close())

	reopened, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: dbPath, Logger: log.Noop})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.GetSession(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", got.TaskID)
}
