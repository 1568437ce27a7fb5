package runtask

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/slok/linguaflow/internal/model"
)

// presentQuestion shows a multiple-choice question and records one answer
// attempt. Choices are shown in document order, shuffling is a presentation
// concern this terminal stand-in doesn't take on. Returns false when input
// ended.
func (s *Service) presentQuestion(task *model.TaskPackage, item model.QuestionItem) bool {
	q := item.Question

	s.out.line("")
	if item.Group != nil {
		s.out.line(fmt.Sprintf("-- %s %d of %d --", item.Group.ItemType, item.Group.ItemIndex, item.Group.ItemCount))
	}
	if q.Guidance != nil {
		s.out.guidance(*q.Guidance)
	}

	s.out.stem(task, q.Stem)
	for i, opt := range q.Options {
		s.out.option(task, i+1, opt)
	}
	if q.Hint != "" {
		s.out.line(fmt.Sprintf("  hint: %s", q.Hint))
	}

	s.out.prompt("answer> ")
	answer, ok := s.readLine()
	if !ok {
		return false
	}

	choice, err := strconv.Atoi(strings.TrimSpace(answer))
	correct := err == nil && containsIndex(q.CorrectOptionIndexes, choice-1)
	if correct {
		s.out.line("Correct!")
	} else {
		s.out.line(fmt.Sprintf("Not quite. Correct: %s", correctOptionsText(q)))
	}
	if err == nil && choice >= 1 && choice <= len(q.Options) && q.Options[choice-1].Explanation != "" {
		s.out.line(q.Options[choice-1].Explanation)
	}

	return true
}

// presentSubtask walks a guided dialogue turn by turn, asking the learner
// to pick the right line whenever their turn carries distractors.
func (s *Service) presentSubtask(task *model.TaskPackage, item model.Phase4SubtaskItem) bool {
	entry := item.Subtask

	ourRole := "user"
	if len(entry.AllowedRoles) > 0 {
		ourRole = entry.AllowedRoles[0]
	}

	dialogue, ok := task.TaskModel.Dialogue(entry.DialogueID)
	if !ok {
		// Dangling reference: degrade to a placeholder rather than abort.
		s.out.line(fmt.Sprintf("(dialogue %q not available)", entry.DialogueID))
		return true
	}

	distractorsByTurn := map[int][]model.DistractorOption{}
	for _, d := range entry.DialogDistractors {
		distractorsByTurn[d.Index] = d.Options
	}

	s.out.line("")
	s.out.line(fmt.Sprintf("Dialogue practice, you are: %s", task.TaskModel.RoleTitle(ourRole)))

	for turnIndex, turn := range dialogue.Turns {
		distractors := distractorsByTurn[turnIndex]
		if turn.Role != ourRole || len(distractors) == 0 {
			s.out.line(fmt.Sprintf("%s: %s", task.TaskModel.RoleTitle(turn.Role), turn.Text))
			continue
		}

		s.out.line("Your line:")
		s.out.line(fmt.Sprintf("  1. %s", turn.Text))
		for i, d := range distractors {
			s.out.line(fmt.Sprintf("  %d. %s", i+2, d.Text))
		}
		s.out.prompt("pick> ")
		answer, ok := s.readLine()
		if !ok {
			return false
		}
		if strings.TrimSpace(answer) == "1" {
			s.out.line("Right line!")
		} else {
			s.out.line(fmt.Sprintf("The line was: %s", turn.Text))
		}
	}

	return true
}

// presentCloze shows one fill-in-the-blank round.
func (s *Service) presentCloze(item model.Phase5PhraseClozeItem) bool {
	s.out.line("")
	blanked := item.Sentence
	if item.Answer != "" && strings.Contains(item.Sentence, item.Answer) {
		blanked = strings.ReplaceAll(item.Sentence, item.Answer, "____")
	}
	s.out.line(fmt.Sprintf("Fill the blank: %s", blanked))
	if item.TextHint != "" {
		s.out.line(fmt.Sprintf("  hint: %s", item.TextHint))
	}

	s.out.prompt("fill> ")
	answer, ok := s.readLine()
	if !ok {
		return false
	}

	if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(item.Answer)) {
		s.out.line("Correct!")
	} else {
		s.out.line(fmt.Sprintf("The answer was: %s", item.Answer))
	}

	return true
}

// presentRoleplay walks a free roleplay: partner lines are shown, the
// learner's lines are free text with optional hints, no checking.
func (s *Service) presentRoleplay(task *model.TaskPackage, item model.Phase6RoleplayItem) bool {
	entry := item.Roleplay

	ourRole := "user"
	if len(entry.AllowedRoles) > 0 {
		ourRole = entry.AllowedRoles[0]
	}

	dialogue, ok := task.TaskModel.Dialogue(entry.DialogueID)
	if !ok {
		s.out.line(fmt.Sprintf("(dialogue %q not available)", entry.DialogueID))
		return true
	}

	hintsByTurn := map[int]string{}
	for _, h := range entry.DialogHints {
		hintsByTurn[h.Index] = h.Text
	}

	s.out.line("")
	s.out.line(fmt.Sprintf("Roleplay, you are: %s", task.TaskModel.RoleTitle(ourRole)))

	for turnIndex, turn := range dialogue.Turns {
		if turn.Role != ourRole {
			s.out.line(fmt.Sprintf("%s: %s", task.TaskModel.RoleTitle(turn.Role), turn.Text))
			continue
		}

		if hint := hintsByTurn[turnIndex]; hint != "" {
			s.out.line(fmt.Sprintf("  hint: %s", hint))
		}
		s.out.prompt("you> ")
		if _, ok := s.readLine(); !ok {
			return false
		}
		s.out.line(fmt.Sprintf("(sample: %s)", turn.Text))
	}

	return true
}

func containsIndex(indexes []int, idx int) bool {
	for _, i := range indexes {
		if i == idx {
			return true
		}
	}
	return false
}

func correctOptionsText(q model.Question) string {
	texts := []string{}
	for _, i := range q.CorrectOptionIndexes {
		if i >= 0 && i < len(q.Options) {
			texts = append(texts, fmt.Sprintf("%d. %s", i+1, q.Options[i].Text))
		}
	}
	return strings.Join(texts, " / ")
}

// renderer writes the terminal presentation.
type renderer struct {
	w io.Writer
}

func (r *renderer) line(s string)   { fmt.Fprintln(r.w, s) }
func (r *renderer) prompt(s string) { fmt.Fprint(r.w, s) }

func (r *renderer) title(s string) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, "== "+s+" ==")
}

func (r *renderer) guidance(g model.Guidance) {
	if g.Purpose != "" {
		fmt.Fprintln(r.w, "  "+g.Purpose)
	}
	if g.Description != "" {
		fmt.Fprintln(r.w, "  "+g.Description)
	}
}

func (r *renderer) phaseGuidance(item model.PhaseGuidanceItem) {
	r.title(fmt.Sprintf("Phase: %s", item.Phase.Type))
	if item.Phase.Guidance != nil {
		r.guidance(*item.Phase.Guidance)
	}
}

func (r *renderer) sentenceExercise(item model.Phase5SentenceItem) {
	fmt.Fprintln(r.w, "")
	if item.Sentence == "" {
		fmt.Fprintln(r.w, "(no sentence for this exercise)")
		return
	}
	fmt.Fprintf(r.w, "Build the sentence: %s\n", item.Sentence)
}

// stem prints the question stem with textual placeholders for media, asset
// ids that don't resolve included: placeholders are the one consistent
// fallback for unresolved references.
func (r *renderer) stem(task *model.TaskPackage, stem model.QuestionStem) {
	if stem.Text != "" {
		fmt.Fprintln(r.w, stem.Text)
	}
	if stem.ImageAssetID != "" {
		fmt.Fprintf(r.w, "[image: %s]\n", imageLabel(task.TaskModel, stem.ImageAssetID))
	}
	if stem.AudioAssetID != "" {
		fmt.Fprintf(r.w, "[audio: %s]\n", audioLabel(task.TaskModel, stem.AudioAssetID))
	}
}

func (r *renderer) option(task *model.TaskPackage, number int, opt model.QuestionOption) {
	parts := []string{}
	if opt.Text != "" {
		parts = append(parts, opt.Text)
	}
	if opt.ImageAssetID != "" {
		parts = append(parts, fmt.Sprintf("[image: %s]", imageLabel(task.TaskModel, opt.ImageAssetID)))
	}
	if opt.AudioAssetID != "" {
		parts = append(parts, fmt.Sprintf("[audio: %s]", audioLabel(task.TaskModel, opt.AudioAssetID)))
	}
	fmt.Fprintf(r.w, "  %d. %s\n", number, strings.Join(parts, " "))
}

func imageLabel(tm model.TaskModel, id string) string {
	if a, ok := tm.ImageAsset(id); ok && !a.Empty() {
		return id
	}
	return id + " (placeholder)"
}

func audioLabel(tm model.TaskModel, id string) string {
	if a, ok := tm.AudioAsset(id); ok && !a.Empty() {
		return id
	}
	return id + " (placeholder)"
}
