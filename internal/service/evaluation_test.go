package service

import (
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func bankOf(correct ...int) []model.Question {
	qs := make([]model.Question, len(correct))
	for i, c := range correct {
		qs[i] = model.Question{
			Subject:       model.SubjectMaths,
			Text:          "q",
			Options:       model.StringSlice{"a", "b", "c", "d"},
			CorrectOption: c,
		}
	}
	return qs
}

func TestScoreAllCorrect(t *testing.T) {
	qs := bankOf(0, 1, 2, 3)
	score, err := Score(qs, []*int{intPtr(0), intPtr(1), intPtr(2), intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 100, score)
}

func TestScoreRoundsHalfUp(t *testing.T) {
	// 3题对1 = 33.33 → 33；3题对2 = 66.67 → 67
	qs := bankOf(0, 0, 0)
	score, err := Score(qs, []*int{intPtr(0), intPtr(1), intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 33, score)

	score, err = Score(qs, []*int{intPtr(0), intPtr(0), intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 67, score)

	// 8题对1 = 12.5 → 13
	qs = bankOf(0, 0, 0, 0, 0, 0, 0, 0)
	score, err = Score(qs, []*int{intPtr(0), intPtr(1), intPtr(1), intPtr(1), intPtr(1), intPtr(1), intPtr(1), intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 13, score)
}

func TestScoreEmptyTestRejected(t *testing.T) {
	_, err := Score(nil, []*int{})
	assert.ErrorIs(t, err, util.ErrInvalidTest)
}

func TestScoreUnansweredCountsWrong(t *testing.T) {
	qs := bankOf(0, 0)

	// nil 作答
	score, err := Score(qs, []*int{intPtr(0), nil})
	require.NoError(t, err)
	assert.Equal(t, 50, score)

	// 答卷比题少
	score, err = Score(qs, []*int{intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 50, score)

	// 完全未作答
	score, err = Score(qs, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestScoreTooManyAnswersRejected(t *testing.T) {
	qs := bankOf(0)
	_, err := Score(qs, []*int{intPtr(0), intPtr(1)})
	assert.ErrorIs(t, err, util.ErrAnswerCount)
}

func TestScoreOutOfRangeAnswerIsWrong(t *testing.T) {
	qs := bankOf(0, 0)
	score, err := Score(qs, []*int{intPtr(9), intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 50, score)
}
