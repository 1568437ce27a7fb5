package checktask

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/linguaflow/internal/log"
	"github.com/slok/linguaflow/internal/model"
)

// ServiceConfig is the configuration for the check service.
type ServiceConfig struct {
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Service runs referential-integrity checks over a task package. Gaps never
// abort flattening or a session, the report tells authors what the
// presentation layer will be degrading around.
type Service struct {
	logger log.Logger
}

// NewService creates a new check service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{logger: cfg.Logger}, nil
}

// Request represents the check request parameters.
type Request struct {
	Task model.TaskPackage
}

// Run checks the task package and returns one result per check.
func (s *Service) Run(ctx context.Context, req Request) ([]model.CheckResult, error) {
	task := req.Task

	results := []model.CheckResult{
		checkRoleIDs(task.TaskModel),
		checkDialogueRefs(task),
		checkTurnRoles(task.TaskModel),
		checkTurnAudio(task.TaskModel),
		checkSubtaskRefs(task),
		checkQuestionAssets(task),
		checkQuestionAnswers(task),
	}

	ok, warnings, errs := model.CountByStatus(results)
	s.logger.Debugf("Checked task %q: %d ok, %d warnings, %d errors", task.ID, ok, warnings, errs)

	return results, nil
}

// checkRoleIDs verifies role ids are unique.
func checkRoleIDs(tm model.TaskModel) model.CheckResult {
	seen := map[string]bool{}
	dups := []string{}
	for _, r := range tm.Roles {
		if r.ID == "" {
			continue
		}
		if seen[r.ID] {
			dups = append(dups, r.ID)
		}
		seen[r.ID] = true
	}

	if len(dups) > 0 {
		return model.CheckResult{
			ID:      "role_ids",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("duplicated role ids: %s", strings.Join(dups, ", ")),
		}
	}

	return model.CheckResult{ID: "role_ids", Status: model.CheckStatusOK, Message: fmt.Sprintf("%d roles, ids unique", len(tm.Roles))}
}

// checkDialogueRefs verifies every dialogue id referenced from phase 4
// subtasks and phase 6 roleplays resolves in the task model.
func checkDialogueRefs(task model.TaskPackage) model.CheckResult {
	missing := []string{}

	forEachStep(task, func(_, _ int, step model.Step) {
		switch s := step.(type) {
		case model.Phase4SubtasksStep:
			for _, e := range s.Subtasks {
				if _, ok := task.TaskModel.Dialogue(e.DialogueID); !ok {
					missing = append(missing, e.DialogueID)
				}
			}
		case model.Phase6RoleplayStep:
			for _, e := range s.Roleplays {
				if _, ok := task.TaskModel.Dialogue(e.DialogueID); !ok {
					missing = append(missing, e.DialogueID)
				}
			}
		}
	})

	if len(missing) > 0 {
		return model.CheckResult{
			ID:      "dialogue_refs",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("dangling dialogue references: %s", strings.Join(missing, ", ")),
		}
	}

	return model.CheckResult{ID: "dialogue_refs", Status: model.CheckStatusOK, Message: "all dialogue references resolve"}
}

// checkTurnRoles verifies every dialogue turn role matches a task model role.
func checkTurnRoles(tm model.TaskModel) model.CheckResult {
	known := map[string]bool{}
	for _, r := range tm.Roles {
		known[r.ID] = true
		known[r.Title] = true
	}

	missing := []string{}
	for _, d := range tm.Dialogues {
		for i, t := range d.Turns {
			if !known[t.Role] {
				missing = append(missing, fmt.Sprintf("%s[%d]:%s", d.ID, i, t.Role))
			}
		}
	}

	if len(missing) > 0 {
		return model.CheckResult{
			ID:      "turn_roles",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("dialogue turns with unknown roles: %s", strings.Join(missing, ", ")),
		}
	}

	return model.CheckResult{ID: "turn_roles", Status: model.CheckStatusOK, Message: "all dialogue turn roles resolve"}
}

// checkTurnAudio verifies every dialogue turn audio asset id resolves.
func checkTurnAudio(tm model.TaskModel) model.CheckResult {
	missing := []string{}
	for _, d := range tm.Dialogues {
		for i, t := range d.Turns {
			if t.AudioAssetID == "" {
				continue
			}
			if _, ok := tm.AudioAsset(t.AudioAssetID); !ok {
				missing = append(missing, fmt.Sprintf("%s[%d]:%s", d.ID, i, t.AudioAssetID))
			}
		}
	}

	if len(missing) > 0 {
		return model.CheckResult{
			ID:      "turn_audio",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("dangling turn audio assets: %s", strings.Join(missing, ", ")),
		}
	}

	return model.CheckResult{ID: "turn_audio", Status: model.CheckStatusOK, Message: "all turn audio assets resolve"}
}

// checkSubtaskRefs verifies subtask back-references from steps and dialogues.
func checkSubtaskRefs(task model.TaskPackage) model.CheckResult {
	known := map[string]bool{}
	for _, st := range task.TaskModel.Subtasks {
		known[st.ID] = true
	}

	missing := []string{}
	for _, d := range task.TaskModel.Dialogues {
		if d.SubtaskID != "" && !known[d.SubtaskID] {
			missing = append(missing, d.SubtaskID)
		}
	}
	forEachStep(task, func(_, _ int, step model.Step) {
		if s, ok := step.(model.Phase4SubtasksStep); ok {
			for _, e := range s.Subtasks {
				if e.SubtaskID != "" && !known[e.SubtaskID] {
					missing = append(missing, e.SubtaskID)
				}
			}
		}
	})

	if len(missing) > 0 {
		return model.CheckResult{
			ID:      "subtask_refs",
			Status:  model.CheckStatusWarning,
			Message: fmt.Sprintf("dangling subtask references: %s", strings.Join(missing, ", ")),
		}
	}

	return model.CheckResult{ID: "subtask_refs", Status: model.CheckStatusOK, Message: "all subtask references resolve"}
}

// checkQuestionAssets verifies stem and option asset references resolve.
// Gaps render as placeholders, hence a warning.
func checkQuestionAssets(task model.TaskPackage) model.CheckResult {
	missing := 0
	forEachQuestion(task, func(loc string, q model.Question) {
		refs := []struct {
			id    string
			image bool
		}{
			{q.Stem.ImageAssetID, true},
			{q.Stem.AudioAssetID, false},
		}
		for _, o := range q.Options {
			refs = append(refs,
				struct {
					id    string
					image bool
				}{o.ImageAssetID, true},
				struct {
					id    string
					image bool
				}{o.AudioAssetID, false},
			)
		}

		for _, ref := range refs {
			if ref.id == "" {
				continue
			}
			var ok bool
			if ref.image {
				_, ok = task.TaskModel.ImageAsset(ref.id)
			} else {
				_, ok = task.TaskModel.AudioAsset(ref.id)
			}
			if !ok {
				missing++
			}
		}
	})

	if missing > 0 {
		return model.CheckResult{
			ID:      "question_assets",
			Status:  model.CheckStatusWarning,
			Message: fmt.Sprintf("%d question asset references don't resolve (will render as placeholders)", missing),
		}
	}

	return model.CheckResult{ID: "question_assets", Status: model.CheckStatusOK, Message: "all question asset references resolve"}
}

// checkQuestionAnswers validates every question's correct option indexes.
func checkQuestionAnswers(task model.TaskPackage) model.CheckResult {
	invalid := []string{}
	forEachQuestion(task, func(loc string, q model.Question) {
		if err := q.Validate(); err != nil {
			invalid = append(invalid, loc)
		}
	})

	if len(invalid) > 0 {
		return model.CheckResult{
			ID:      "question_answers",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("questions with invalid correct option indexes: %s", strings.Join(invalid, ", ")),
		}
	}

	return model.CheckResult{ID: "question_answers", Status: model.CheckStatusOK, Message: "all question answer indexes valid"}
}

func forEachStep(task model.TaskPackage, fn func(phaseIndex, stepIndex int, step model.Step)) {
	for pi, phase := range task.Phases {
		for si, step := range phase.Steps {
			fn(pi, si, step)
		}
	}
}

func forEachQuestion(task model.TaskPackage, fn func(loc string, q model.Question)) {
	forEachStep(task, func(pi, si int, step model.Step) {
		visit := func(qs []model.Question) {
			for qi, q := range qs {
				fn(fmt.Sprintf("phase%d/step%d/q%d", pi, si, qi), q)
			}
		}
		visitGroups := func(groups *model.QuestionGroups) {
			for _, key := range groups.Keys() {
				qs, _ := groups.Get(key)
				visit(qs)
			}
		}

		switch s := step.(type) {
		case model.Phase1TaskEntryStep:
			visit(s.EntryQuestions)
		case model.Phase2WarmupStep:
			visit(s.WarmupQuestions)
		case model.Phase3WordsStep:
			visitGroups(s.WordQuestions)
		case model.Phase3PhrasesStep:
			visitGroups(s.PhraseQuestions)
		case model.Phase3SentencesStep:
			visitGroups(s.SentenceQuestions)
		case model.Phase5WordsStep:
			visitGroups(s.WordQuestions)
		case model.Phase5PhrasesStep:
			visitGroups(s.PhraseQuestions)
		}
	})
}
