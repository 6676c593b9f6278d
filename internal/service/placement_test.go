package service

import (
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 诊断卷：每班一题，按班级升序
func placementBank() []model.Question {
	levels := []string{"Class 1", "Class 2", "Class 3"}
	qs := make([]model.Question, len(levels))
	for i, level := range levels {
		qs[i] = model.Question{
			Subject:       model.SubjectMaths,
			ClassLevel:    level,
			Kind:          model.TestPlacement,
			Text:          "q",
			Options:       model.StringSlice{"a", "b"},
			CorrectOption: 0,
		}
	}
	return qs
}

func TestPlaceLevelFirstWrongIsCeiling(t *testing.T) {
	cfg := progressionConfig()
	qs := placementBank()

	// 第一题就错 → 最低班
	level, err := PlaceLevel(cfg, qs, []*int{intPtr(1), intPtr(0), intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Class 1", level)

	// 第二题错 → Class 2
	level, err = PlaceLevel(cfg, qs, []*int{intPtr(0), intPtr(1), intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Class 2", level)
}

func TestPlaceLevelAllCorrectIsHighest(t *testing.T) {
	level, err := PlaceLevel(progressionConfig(), placementBank(), []*int{intPtr(0), intPtr(0), intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Class 3", level)
}

// 全对只落在题库覆盖到的最高班，不越过诊断卷的范围
func TestPlaceLevelAllCorrectCappedByBankCoverage(t *testing.T) {
	cfg := progressionConfig()

	// 题库只到 Class 1：全对也只能落 Class 1
	qs := placementBank()[:1]
	level, err := PlaceLevel(cfg, qs, []*int{intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Class 1", level)

	// 题库到 Class 2：全对落 Class 2
	qs = placementBank()[:2]
	level, err = PlaceLevel(cfg, qs, []*int{intPtr(0), intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Class 2", level)
}

// 未作答按答错计
func TestPlaceLevelUnansweredCountsWrong(t *testing.T) {
	cfg := progressionConfig()
	qs := placementBank()

	level, err := PlaceLevel(cfg, qs, []*int{intPtr(0), nil, intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Class 2", level)

	// 答卷比题少：断在第一道缺答处
	level, err = PlaceLevel(cfg, qs, []*int{intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Class 2", level)
}

func TestPlaceLevelEmptyBankRejected(t *testing.T) {
	_, err := PlaceLevel(progressionConfig(), nil, nil)
	assert.ErrorIs(t, err, util.ErrInvalidTest)
}

func TestPlaceLevelTooManyAnswersRejected(t *testing.T) {
	qs := placementBank()
	answers := []*int{intPtr(0), intPtr(0), intPtr(0), intPtr(0)}
	_, err := PlaceLevel(progressionConfig(), qs, answers)
	assert.ErrorIs(t, err, util.ErrAnswerCount)
}

func TestPlaceLevelUnknownLevelRejected(t *testing.T) {
	qs := placementBank()
	qs[0].ClassLevel = "Kindergarten"
	_, err := PlaceLevel(progressionConfig(), qs, []*int{intPtr(1), intPtr(0), intPtr(0)})
	assert.ErrorIs(t, err, util.ErrUnknownClassLevel)
}
