package service

import (
	"inclusive_edu_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifiedMathsQuestions(t *testing.T) {
	original := []model.Question{
		{Text: "What is 12 x 12?", Options: model.StringSlice{"121", "144", "112", "124"}, CorrectOption: 1},
		{Text: "What is 7 x 8?", Options: model.StringSlice{"54", "56", "64", "48"}, CorrectOption: 1},
	}

	simple := SimplifiedQuestions(model.SubjectMaths, original)
	require.Len(t, simple, 2)

	assert.Equal(t, "Basic Task 1: 1 + 1 = ?", simple[0].Text)
	assert.Equal(t, model.StringSlice{"2", "5", "0", "10"}, simple[0].Options)
	assert.Equal(t, 0, simple[0].CorrectOption)

	assert.Equal(t, "Basic Task 2: 2 + 1 = ?", simple[1].Text)
	assert.Equal(t, model.StringSlice{"3", "6", "0", "10"}, simple[1].Options)
	assert.Equal(t, 0, simple[1].CorrectOption)
}

func TestSimplifiedScienceQuestions(t *testing.T) {
	original := []model.Question{
		{Text: "Which organ pumps blood?", Options: model.StringSlice{"Lung", "Heart", "Liver"}, CorrectOption: 1},
	}

	simple := SimplifiedQuestions(model.SubjectScience, original)
	require.Len(t, simple, 1)

	assert.Equal(t, "Simple Science: Is a Heart something we can see?", simple[0].Text)
	assert.Equal(t, model.StringSlice{"Yes", "No", "Maybe", "Never"}, simple[0].Options)
	assert.Equal(t, 0, simple[0].CorrectOption)
}

// 长题组里每道简化题的四个选项互不相同
func TestSimplifiedMathsOptionsUnique(t *testing.T) {
	original := make([]model.Question, 12)
	for i := range original {
		original[i] = model.Question{Text: "q", Options: model.StringSlice{"1", "2"}, CorrectOption: 0}
	}

	simple := SimplifiedQuestions(model.SubjectMaths, original)
	for i, q := range simple {
		seen := map[string]bool{}
		for _, opt := range q.Options {
			assert.Falsef(t, seen[opt], "question %d repeats option %q", i+1, opt)
			seen[opt] = true
		}
		assert.Equal(t, 0, q.CorrectOption)
	}
}

// 同一输入位置永远产出同一道题：反复渲染内容一致
func TestSimplifiedQuestionsDeterministic(t *testing.T) {
	original := []model.Question{
		{Text: "a", Options: model.StringSlice{"1", "2"}, CorrectOption: 0},
		{Text: "b", Options: model.StringSlice{"1", "2"}, CorrectOption: 1},
		{Text: "c", Options: model.StringSlice{"1", "2"}, CorrectOption: 0},
	}

	first := SimplifiedQuestions(model.SubjectMaths, original)
	second := SimplifiedQuestions(model.SubjectMaths, original)
	assert.Equal(t, first, second)
}

// 原题组不被改写
func TestSimplifiedQuestionsDoNotMutateInput(t *testing.T) {
	original := []model.Question{
		{Text: "What is 12 x 12?", Options: model.StringSlice{"121", "144"}, CorrectOption: 1},
	}

	SimplifiedQuestions(model.SubjectMaths, original)
	assert.Equal(t, "What is 12 x 12?", original[0].Text)
	assert.Equal(t, 1, original[0].CorrectOption)
}

func TestSimplifiedQuestionsEmpty(t *testing.T) {
	assert.Empty(t, SimplifiedQuestions(model.SubjectMaths, nil))
}
