// Package flow implements the flattening of a nested task package into the
// single ordered item sequence the navigation layer steps through.
package flow

import (
	"github.com/slok/linguaflow/internal/model"
)

// Flatten walks the task package in phase order, then step order, and
// expands every step into its flow items. That ordering is the canonical
// navigation order. It also extracts one guidance item per phase that
// carries guidance, whether or not the phase produced flow items.
//
// Flatten is deterministic and side-effect free: it never mutates the task
// package and is total over any structurally valid document, empty or
// missing collections included.
func Flatten(task model.TaskPackage) ([]model.PhaseGuidanceItem, []model.FlowItem) {
	guidanceItems := []model.PhaseGuidanceItem{}
	flowItems := []model.FlowItem{}

	for phaseIndex, phase := range task.Phases {
		for stepIndex, step := range phase.Steps {
			ref := model.FlowRef{PhaseIndex: phaseIndex, StepIndex: stepIndex}
			flowItems = append(flowItems, expandStep(ref, step)...)
		}

		if phase.Guidance != nil {
			guidanceItems = append(guidanceItems, model.PhaseGuidanceItem{
				PhaseIndex: phaseIndex,
				Phase:      phase,
			})
		}
	}

	return guidanceItems, flowItems
}

// expandStep applies the per-step-type expansion rules.
func expandStep(ref model.FlowRef, step model.Step) []model.FlowItem {
	switch s := step.(type) {
	case model.Phase1TaskEntryStep:
		return questionItems(ref, s.EntryQuestions)

	case model.Phase2WarmupStep:
		return questionItems(ref, s.WarmupQuestions)

	case model.Phase3WordsStep:
		return groupedQuestionItems(ref, "word", s.WordQuestions)

	case model.Phase3PhrasesStep:
		return groupedQuestionItems(ref, "phrase", s.PhraseQuestions)

	case model.Phase3SentencesStep:
		return groupedQuestionItems(ref, "sentence", s.SentenceQuestions)

	case model.Phase4SubtasksStep:
		items := make([]model.FlowItem, 0, len(s.Subtasks))
		for i, subtask := range s.Subtasks {
			items = append(items, model.Phase4SubtaskItem{
				FlowRef:      ref,
				SubtaskIndex: i,
				Subtask:      subtask,
			})
		}
		return items

	case model.Phase5WordsStep:
		return groupedQuestionItems(ref, "word", s.WordQuestions)

	case model.Phase5PhrasesStep:
		return phase5PhraseItems(ref, s)

	case model.Phase5SentencesStep:
		items := make([]model.FlowItem, 0, len(s.Sentences))
		for i, sentence := range s.Sentences {
			items = append(items, model.Phase5SentenceItem{
				FlowRef:       ref,
				SentenceIndex: i,
				Sentence:      sentence,
			})
		}
		// An empty sentence list still occupies one navigable slot.
		if len(items) == 0 {
			items = append(items, model.Phase5SentenceItem{FlowRef: ref})
		}
		return items

	case model.Phase6RoleplayStep:
		// Only the first roleplay entry is navigated, later difficulty
		// variants in the same step are ignored.
		if len(s.Roleplays) == 0 {
			return nil
		}
		return []model.FlowItem{model.Phase6RoleplayItem{
			FlowRef:  ref,
			Roleplay: s.Roleplays[0],
		}}
	}

	return nil
}

// questionItems expands a flat question list, one item per question in
// array order.
func questionItems(ref model.FlowRef, questions []model.Question) []model.FlowItem {
	items := make([]model.FlowItem, 0, len(questions))
	for i, q := range questions {
		items = append(items, model.QuestionItem{
			FlowRef:       ref,
			QuestionIndex: i,
			Question:      q,
		})
	}
	return items
}

// groupedQuestionItems expands a per-entity question mapping in key
// insertion order. The group label ("word 2 of 5") is attached only when
// the mapping has more than one key so single-entity steps don't carry a
// redundant "1 of 1".
func groupedQuestionItems(ref model.FlowRef, itemType string, groups *model.QuestionGroups) []model.FlowItem {
	items := []model.FlowItem{}
	keys := groups.Keys()

	questionIndex := 0
	for keyIndex, key := range keys {
		var group *model.GroupLabel
		if len(keys) > 1 {
			group = &model.GroupLabel{
				ItemType:  itemType,
				ItemIndex: keyIndex + 1,
				ItemCount: len(keys),
			}
		}

		questions, _ := groups.Get(key)
		for _, q := range questions {
			items = append(items, model.QuestionItem{
				FlowRef:       ref,
				QuestionIndex: questionIndex,
				Question:      q,
				Group:         group,
			})
			questionIndex++
		}
	}

	return items
}

// phase5PhraseItems prefers cloze rounds when the step has any, otherwise
// it falls back to the phrase question groups, labeled like phase 3.
func phase5PhraseItems(ref model.FlowRef, step model.Phase5PhrasesStep) []model.FlowItem {
	if step.PhraseClozes.Len() == 0 {
		return groupedQuestionItems(ref, "phrase", step.PhraseQuestions)
	}

	items := []model.FlowItem{}
	for _, phraseID := range step.PhraseClozes.Keys() {
		cloze, _ := step.PhraseClozes.Get(phraseID)
		for roundIndex, sentence := range cloze.Sentences {
			items = append(items, model.Phase5PhraseClozeItem{
				FlowRef:    ref,
				PhraseID:   phraseID,
				RoundIndex: roundIndex,
				Sentence:   sentence,
				Answer:     cloze.Answer,
				TextHint:   cloze.TextHint,
				AudioHint:  cloze.AudioHint,
			})
		}
	}

	return items
}
