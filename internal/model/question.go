package model

import "fmt"

// QuestionType tags the interaction style of a question. Informational only,
// it does not change how the question is flattened or navigated.
type QuestionType string

const (
	QuestionTypeTextText  QuestionType = "text_text"
	QuestionTypeTextImage QuestionType = "text_image"
	QuestionTypeTextCloze QuestionType = "text_cloze"
	QuestionTypeAudioText QuestionType = "audio_text"
)

// QuestionStem is what the learner is asked: text and/or media references.
type QuestionStem struct {
	Text         string
	AudioAssetID string
	ImageAssetID string
}

// QuestionOption is one answer choice.
type QuestionOption struct {
	Text         string
	AudioAssetID string
	ImageAssetID string
	Explanation  string
}

// Question is a multiple-choice exercise. One correct index means
// single-select, more than one means multi-select.
type Question struct {
	Type                 QuestionType
	Guidance             *Guidance
	Stem                 QuestionStem
	Options              []QuestionOption
	CorrectOptionIndexes []int
	Hint                 string
}

// Validate checks that the correct option indexes are non-empty, unique and
// within bounds of the option list.
func (q Question) Validate() error {
	if len(q.CorrectOptionIndexes) == 0 {
		return fmt.Errorf("at least one correct option index is required: %w", ErrNotValid)
	}

	seen := map[int]bool{}
	for _, idx := range q.CorrectOptionIndexes {
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("correct option index %d out of bounds (have %d options): %w", idx, len(q.Options), ErrNotValid)
		}
		if seen[idx] {
			return fmt.Errorf("duplicated correct option index %d: %w", idx, ErrNotValid)
		}
		seen[idx] = true
	}

	return nil
}
