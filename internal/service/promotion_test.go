package service

import (
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressionConfig() *config.ProgressionConfig {
	return &config.ProgressionConfig{
		TopicPassThreshold: 40,
		FinalPassThreshold: 90,
		MaxFailStreak:      3,
		ClassLevels:        []string{"Class 1", "Class 2", "Class 3"},
		Subjects:           []string{"maths", "science"},
	}
}

func freshTrack(level string) *model.SubjectTrack {
	return &model.SubjectTrack{
		Subject:            model.SubjectMaths,
		ClassLevel:         level,
		CompletedLessonIDs: model.UintSet{},
		CompletedTopicIDs:  model.UintSet{},
		CompletedModuleIDs: model.UintSet{},
		VerifiedSummaries:  model.UintSet{},
		FailAttempts:       model.FailCountMap{},
		ExamStatus:         model.ExamNotEligible,
		ExamResult:         model.ExamResultNone,
	}
}

func lessonWithID(id uint) *model.Lesson {
	l := &model.Lesson{Subject: model.SubjectMaths, ClassLevel: "Class 1", Title: "Counting"}
	l.ID = id
	return l
}

func TestTopicPassCompletesLessonOnly(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 1")
	track.FailAttempts[7] = 2

	out, err := engine.Apply(track, model.TestTopic, 85, lessonWithID(7))
	require.NoError(t, err)

	assert.True(t, out.Passed)
	assert.False(t, out.Promoted)
	assert.Equal(t, "Class 1", track.ClassLevel)
	assert.True(t, track.CompletedLessonIDs.Has(7))
	assert.Equal(t, model.ResultTopicPass, track.LastResult)
	assert.Equal(t, 0, track.FailStreak(7))
}

func TestTopicFailLeavesProgressUntouched(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 1")

	out, err := engine.Apply(track, model.TestTopic, 20, lessonWithID(7))
	require.NoError(t, err)

	assert.False(t, out.Passed)
	assert.Equal(t, "Class 1", track.ClassLevel)
	assert.False(t, track.CompletedLessonIDs.Has(7))
	assert.Equal(t, model.ResultFail, track.LastResult)
}

// 同样的85分：主题测验及格但不动班级；当成期末则不及格
func TestHighTopicScoreNeverPromotes(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())

	topicTrack := freshTrack("Class 1")
	_, err := engine.Apply(topicTrack, model.TestTopic, 85, lessonWithID(1))
	require.NoError(t, err)
	assert.Equal(t, "Class 1", topicTrack.ClassLevel)

	finalTrack := freshTrack("Class 1")
	out, err := engine.Apply(finalTrack, model.TestFinal, 85, nil)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Equal(t, "Class 1", finalTrack.ClassLevel)
	assert.Equal(t, model.ExamResultFail, finalTrack.ExamResult)
}

func TestFinalPassAdvancesOneLevelAndResetsProgress(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 1")
	track.CompletedLessonIDs.Add(1)
	track.CompletedLessonIDs.Add(2)
	track.VerifiedSummaries.Add(2)
	track.FailAttempts[2] = 1
	track.ExamStatus = model.ExamSubmitted

	out, err := engine.Apply(track, model.TestFinal, 92, nil)
	require.NoError(t, err)

	assert.True(t, out.Passed)
	assert.True(t, out.Promoted)
	assert.Equal(t, "Class 2", out.NewLevel)
	assert.Equal(t, "Class 2", track.ClassLevel)
	assert.Empty(t, track.CompletedLessonIDs)
	assert.Empty(t, track.VerifiedSummaries)
	assert.Empty(t, track.FailAttempts)
	assert.Equal(t, model.ResultPromoted, track.LastResult)
	assert.Equal(t, model.ExamGraded, track.ExamStatus)
	assert.Equal(t, model.ExamResultPass, track.ExamResult)
}

func TestFinalFailKeepsLevel(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 2")
	track.CompletedLessonIDs.Add(5)
	track.ExamStatus = model.ExamSubmitted

	out, err := engine.Apply(track, model.TestFinal, 89, nil)
	require.NoError(t, err)

	assert.False(t, out.Passed)
	assert.Equal(t, "Class 2", track.ClassLevel)
	assert.True(t, track.CompletedLessonIDs.Has(5))
	assert.Equal(t, model.ExamResultFail, track.ExamResult)
	assert.Equal(t, model.ResultFail, track.LastResult)
}

// 最高班级通过期末：不动级也不清进度
func TestFinalPassAtCeilingIsNoOp(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 3")
	track.CompletedLessonIDs.Add(9)
	track.ExamStatus = model.ExamSubmitted

	out, err := engine.Apply(track, model.TestFinal, 100, nil)
	require.NoError(t, err)

	assert.True(t, out.Passed)
	assert.False(t, out.Promoted)
	assert.Equal(t, "Class 3", track.ClassLevel)
	assert.True(t, track.CompletedLessonIDs.Has(9))
	assert.Equal(t, model.ExamResultPass, track.ExamResult)
}

func TestUnknownTestKindRejected(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 1")

	_, err := engine.Apply(track, model.TestPlacement, 100, nil)
	assert.ErrorIs(t, err, util.ErrInvalidPromotion)
	assert.Equal(t, "Class 1", track.ClassLevel)
}

func TestUnknownClassLevelRejected(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 99")

	_, err := engine.Apply(track, model.TestFinal, 100, nil)
	assert.ErrorIs(t, err, util.ErrUnknownClassLevel)
}

func TestTopicWithoutLessonRejected(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 1")

	_, err := engine.Apply(track, model.TestTopic, 100, nil)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

// 模块收官课的卷由题库类型识别，及格额外计入已完成模块，同样不动班级
func TestModuleCheckpointCompletesModule(t *testing.T) {
	engine := NewPromotionEngine(progressionConfig())
	track := freshTrack("Class 1")
	lesson := lessonWithID(5)

	moduleBank := []model.Question{{Kind: model.TestModule, Text: "q", Options: model.StringSlice{"a", "b"}}}
	assert.Equal(t, model.TestModule, lessonTestKind(moduleBank))
	assert.Equal(t, model.TestTopic, lessonTestKind([]model.Question{{Kind: model.TestTopic}}))

	result, err := engine.Apply(track, model.TestModule, 80, lesson)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.False(t, result.Promoted)
	assert.True(t, track.CompletedLessonIDs.Has(5))
	assert.True(t, track.CompletedModuleIDs.Has(5))
	assert.False(t, track.CompletedTopicIDs.Has(5))
	assert.Equal(t, "Class 1", track.ClassLevel)
}
