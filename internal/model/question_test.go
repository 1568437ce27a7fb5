package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/internal/model"
)

func TestQuestionValidate(t *testing.T) {
	options := []model.QuestionOption{{Text: "a"}, {Text: "b"}, {Text: "c"}}

	tests := map[string]struct {
		question model.Question
		expErr   bool
	}{
		"single correct index should be valid": {
			question: model.Question{Options: options, CorrectOptionIndexes: []int{1}},
		},
		"multiple correct indexes should be valid": {
			question: model.Question{Options: options, CorrectOptionIndexes: []int{0, 2}},
		},
		"no correct indexes should fail": {
			question: model.Question{Options: options},
			expErr:   true,
		},
		"out of bounds index should fail": {
			question: model.Question{Options: options, CorrectOptionIndexes: []int{3}},
			expErr:   true,
		},
		"negative index should fail": {
			question: model.Question{Options: options, CorrectOptionIndexes: []int{-1}},
			expErr:   true,
		},
		"duplicated index should fail": {
			question: model.Question{Options: options, CorrectOptionIndexes: []int{1, 1}},
			expErr:   true,
		},
		"index into an empty option list should fail": {
			question: model.Question{CorrectOptionIndexes: []int{0}},
			expErr:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.question.Validate()

			if test.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
