package runtask_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/app/runtask"
	"github.com/slok/linguaflow/internal/model"
	"github.com/slok/linguaflow/internal/storage/memory"
	"github.com/slok/linguaflow/internal/storage/storagemock"
)

// walkableTask builds a task with a guided question phase and a sentence
// review phase: three input lines walk it to completion.
func walkableTask() *model.TaskPackage {
	return &model.TaskPackage{
		ID:    "task-1",
		Title: "Test task",
		Phases: []model.Phase{
			{
				Type:     model.PhaseType1,
				Guidance: &model.Guidance{Purpose: "intro"},
				Steps: []model.Step{
					model.Phase1TaskEntryStep{
						EntryQuestions: []model.Question{{
							Type:                 model.QuestionTypeTextText,
							Stem:                 model.QuestionStem{Text: "Where?"},
							Options:              []model.QuestionOption{{Text: "cafe"}, {Text: "bank"}},
							CorrectOptionIndexes: []int{0},
						}},
					},
				},
			},
			{
				Type: model.PhaseType5,
				Steps: []model.Step{
					model.Phase5SentencesStep{Sentences: []string{"a sentence"}},
				},
			},
		},
	}
}

func newService(t *testing.T, task *model.TaskPackage, input string, sessions *memory.Repository) (*runtask.Service, *bytes.Buffer) {
	t.Helper()

	taskRepo := &storagemock.MockTaskRepository{}
	taskRepo.On("GetTaskPackage", mock.Anything).Once().Return(task, nil)

	var out bytes.Buffer
	cfg := runtask.ServiceConfig{
		TaskRepository: taskRepo,
		Stdin:          strings.NewReader(input),
		Stdout:         &out,
		Now:            func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) },
		NewID:          func() string { return "session-1" },
	}
	if sessions != nil {
		cfg.SessionRepository = sessions
	}

	svc, err := runtask.NewService(cfg)
	require.NoError(t, err)

	return svc, &out
}

func TestServiceRunCompletes(t *testing.T) {
	sessions, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	// One line per interaction: guidance continue, question answer,
	// sentence continue.
	svc, out := newService(t, walkableTask(), "\n1\n\n", sessions)

	resp, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "session-1", resp.Session.ID)
	assert.Equal(t, model.SessionStatusCompleted, resp.Session.Status)
	assert.Equal(t, 1, resp.Session.AnsweredCount)
	assert.Equal(t, 2, resp.Session.ItemCount)
	require.NotNil(t, resp.Session.CompletedAt)

	output := out.String()
	assert.Contains(t, output, "== Test task ==")
	assert.Contains(t, output, "intro")
	assert.Contains(t, output, "Where?")
	assert.Contains(t, output, "Correct!")
	assert.Contains(t, output, "Build the sentence: a sentence")
	assert.Contains(t, output, "Task complete")

	// The final snapshot is persisted.
	stored, err := sessions.GetSession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, stored.Status)
	assert.Equal(t, 1, stored.AnsweredCount)
}

func TestServiceRunWrongAnswerStillAdvances(t *testing.T) {
	svc, out := newService(t, walkableTask(), "\n2\n\n", nil)

	resp, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusCompleted, resp.Session.Status)
	assert.Equal(t, 1, resp.Session.AnsweredCount)
	assert.Contains(t, out.String(), "Not quite. Correct: 1. cafe")
}

func TestServiceRunAbandonedOnClosedInput(t *testing.T) {
	sessions, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)

	// Input ends right after the guidance screen.
	svc, _ := newService(t, walkableTask(), "\n", sessions)

	resp, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusAbandoned, resp.Session.Status)
	assert.Nil(t, resp.Session.CompletedAt)

	stored, err := sessions.GetSession(context.Background(), "session-1")
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusAbandoned, stored.Status)
}

func TestServiceRunWithoutPersistence(t *testing.T) {
	svc, _ := newService(t, walkableTask(), "\n1\n\n", nil)

	resp, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusCompleted, resp.Session.Status)
}

func TestServiceRunLoadFailure(t *testing.T) {
	taskRepo := &storagemock.MockTaskRepository{}
	taskRepo.On("GetTaskPackage", mock.Anything).Once().Return(nil, assert.AnError)

	svc, err := runtask.NewService(runtask.ServiceConfig{
		TaskRepository: taskRepo,
		Stdin:          strings.NewReader(""),
		Stdout:         &bytes.Buffer{},
	})
	require.NoError(t, err)

	_, err = svc.Run(context.Background())
	require.Error(t, err)
}
