package flattentask_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/app/flattentask"
	"github.com/slok/linguaflow/internal/model"
)

func question(text string) model.Question {
	return model.Question{
		Type:                 model.QuestionTypeTextText,
		Stem:                 model.QuestionStem{Text: text},
		Options:              []model.QuestionOption{{Text: "a"}, {Text: "b"}},
		CorrectOptionIndexes: []int{0},
	}
}

func TestServiceRun(t *testing.T) {
	task := model.TaskPackage{
		ID: "t",
		Phases: []model.Phase{
			{Type: model.PhaseType1, Guidance: &model.Guidance{Purpose: "p"}, Steps: []model.Step{
				model.Phase1TaskEntryStep{
					EntryQuestions: []model.Question{question("q0"), question("q1")},
				},
			}},
			{Type: model.PhaseType5, Steps: []model.Step{
				model.Phase5SentencesStep{Sentences: []string{"s0"}},
			}},
			{Type: model.PhaseType6, Steps: []model.Step{
				model.Phase6RoleplayStep{
					Roleplays: []model.Phase6RoleplayEntry{{DialogueID: "d1"}},
				},
			}},
		},
	}

	svc, err := flattentask.NewService(flattentask.ServiceConfig{})
	require.NoError(t, err)

	resp, err := svc.Run(context.Background(), flattentask.Request{Task: task})
	require.NoError(t, err)

	assert.Len(t, resp.FlowItems, 4)
	assert.Len(t, resp.GuidanceItems, 1)

	assert.Equal(t, map[model.FlowKind]int{
		model.FlowKindQuestion:       2,
		model.FlowKindPhase5Sentence: 1,
		model.FlowKindPhase6Roleplay: 1,
	}, resp.ItemsByKind)

	assert.Equal(t, []int{2, 1, 1}, resp.ItemsByPhase)
}

func TestServiceRunEmptyTask(t *testing.T) {
	svc, err := flattentask.NewService(flattentask.ServiceConfig{})
	require.NoError(t, err)

	resp, err := svc.Run(context.Background(), flattentask.Request{Task: model.TaskPackage{ID: "t"}})
	require.NoError(t, err)

	assert.Empty(t, resp.FlowItems)
	assert.Empty(t, resp.GuidanceItems)
	assert.Empty(t, resp.ItemsByKind)
	assert.Empty(t, resp.ItemsByPhase)
}
