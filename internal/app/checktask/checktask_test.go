package checktask_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/app/checktask"
	"github.com/slok/linguaflow/internal/model"
)

// validTask builds a small internally consistent task package.
func validTask() model.TaskPackage {
	return model.TaskPackage{
		ID: "t",
		TaskModel: model.TaskModel{
			Roles: []model.Role{
				{ID: "customer", Title: "Customer"},
				{ID: "barista", Title: "Barista"},
			},
			Subtasks: []model.Subtask{{ID: "st1", Title: "Order"}},
			Dialogues: []model.Dialogue{
				{
					ID:        "d1",
					Scope:     model.DialogueScopeSubtask,
					SubtaskID: "st1",
					Turns: []model.DialogueTurn{
						{Role: "barista", Text: "Hi", AudioAssetID: "au1"},
						{Role: "customer", Text: "Hello"},
					},
				},
			},
			Assets: model.AssetLibrary{
				Audios: map[string]model.AudioAsset{"au1": {URL: "https://example.com/a.mp3"}},
				Images: map[string]model.ImageAsset{"img1": {URL: "https://example.com/a.png"}},
			},
		},
		Phases: []model.Phase{
			{Type: model.PhaseType1, Steps: []model.Step{
				model.Phase1TaskEntryStep{
					EntryQuestions: []model.Question{{
						Type:                 model.QuestionTypeTextImage,
						Stem:                 model.QuestionStem{Text: "Where?", ImageAssetID: "img1"},
						Options:              []model.QuestionOption{{Text: "a"}, {Text: "b"}},
						CorrectOptionIndexes: []int{0},
					}},
				},
			}},
			{Type: model.PhaseType4, Steps: []model.Step{
				model.Phase4SubtasksStep{
					Subtasks: []model.Phase4SubtaskEntry{
						{SubtaskID: "st1", DialogueID: "d1", AllowedRoles: []string{"customer"}},
					},
				},
			}},
			{Type: model.PhaseType6, Steps: []model.Step{
				model.Phase6RoleplayStep{
					Roleplays: []model.Phase6RoleplayEntry{{DialogueID: "d1"}},
				},
			}},
		},
	}
}

func resultByID(t *testing.T, results []model.CheckResult, id string) model.CheckResult {
	t.Helper()
	for _, r := range results {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("no check result with id %q", id)
	return model.CheckResult{}
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mutate    func(task *model.TaskPackage)
		expID     string
		expStatus model.CheckStatus
	}{
		"a consistent task should pass every check": {
			mutate: func(task *model.TaskPackage) {},
		},
		"duplicated role ids should be an error": {
			mutate: func(task *model.TaskPackage) {
				task.TaskModel.Roles = append(task.TaskModel.Roles, model.Role{ID: "customer", Title: "Dup"})
			},
			expID:     "role_ids",
			expStatus: model.CheckStatusError,
		},
		"a dangling dialogue reference should be an error": {
			mutate: func(task *model.TaskPackage) {
				task.Phases[2].Steps[0] = model.Phase6RoleplayStep{
					Roleplays: []model.Phase6RoleplayEntry{{DialogueID: "missing"}},
				}
			},
			expID:     "dialogue_refs",
			expStatus: model.CheckStatusError,
		},
		"an unknown turn role should be an error": {
			mutate: func(task *model.TaskPackage) {
				task.TaskModel.Dialogues[0].Turns[0].Role = "stranger"
			},
			expID:     "turn_roles",
			expStatus: model.CheckStatusError,
		},
		"a dangling turn audio asset should be an error": {
			mutate: func(task *model.TaskPackage) {
				task.TaskModel.Dialogues[0].Turns[0].AudioAssetID = "missing"
			},
			expID:     "turn_audio",
			expStatus: model.CheckStatusError,
		},
		"a dangling subtask reference should be a warning": {
			mutate: func(task *model.TaskPackage) {
				task.TaskModel.Dialogues[0].SubtaskID = "missing"
			},
			expID:     "subtask_refs",
			expStatus: model.CheckStatusWarning,
		},
		"a dangling question asset should be a warning": {
			mutate: func(task *model.TaskPackage) {
				step := task.Phases[0].Steps[0].(model.Phase1TaskEntryStep)
				step.EntryQuestions[0].Stem.ImageAssetID = "missing"
				task.Phases[0].Steps[0] = step
			},
			expID:     "question_assets",
			expStatus: model.CheckStatusWarning,
		},
		"an out of bounds answer index should be an error": {
			mutate: func(task *model.TaskPackage) {
				step := task.Phases[0].Steps[0].(model.Phase1TaskEntryStep)
				step.EntryQuestions[0].CorrectOptionIndexes = []int{5}
				task.Phases[0].Steps[0] = step
			},
			expID:     "question_answers",
			expStatus: model.CheckStatusError,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			task := validTask()
			test.mutate(&task)

			svc, err := checktask.NewService(checktask.ServiceConfig{})
			require.NoError(t, err)

			results, err := svc.Run(context.Background(), checktask.Request{Task: task})
			require.NoError(t, err)
			require.Len(t, results, 7)

			if test.expID == "" {
				assert.False(t, model.HasErrors(results))
				assert.False(t, model.HasWarnings(results))
				return
			}

			r := resultByID(t, results, test.expID)
			assert.Equal(t, test.expStatus, r.Status)
			assert.NotEmpty(t, r.Message)
		})
	}
}
