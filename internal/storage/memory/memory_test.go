package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage/memory"
)

func sessionFixture(id string, createdAt time.Time) model.Session {
	return model.Session{
		ID:        id,
		TaskID:    "task-1",
		TaskTitle: "Test task",
		Status:    model.SessionStatusActive,
		ItemCount: 10,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func newRepo(t *testing.T) *memory.Repository {
	t.Helper()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)
	return repo
}

func TestRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC()

	s := sessionFixture("id-1", now)
	require.NoError(t, repo.CreateSession(ctx, s))

	// Duplicated creation fails.
	err := repo.CreateSession(ctx, s)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	got, err := repo.GetSession(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", got.TaskID)

	// Update.
	completedAt := now.Add(5 * time.Minute)
	s.Status = model.SessionStatusCompleted
	s.FlowIndex = 9
	s.AnsweredCount = 7
	s.CompletedAt = &completedAt
	require.NoError(t, repo.UpdateSession(ctx, s))

	got, err = repo.GetSession(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, got.Status)
	assert.Equal(t, 9, got.FlowIndex)
	require.NotNil(t, got.CompletedAt)

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
	now := time.Now().UTC()

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

func TestRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC()

	require.NoError(t, repo.CreateSession(ctx, sessionFixture("id-1", now)))

	got, err := repo.GetSession(ctx, "id-1")
	require.NoError(t, err)
	got.TaskTitle = "mutated"

	again, err := repo.GetSession(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Test task", again.TaskTitle)
}
