package service

import (
	"inclusive_edu_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentWith(profile model.AccessibilityProfile) *model.Student {
	s := &model.Student{Name: "test", Accessibility: profile}
	s.ID = 42
	return s
}

func catalogueLesson(id uint, hasAudio, hasVideo bool) model.Lesson {
	l := model.Lesson{
		Subject:    model.SubjectMaths,
		ClassLevel: "Class 1",
		Title:      "Lesson",
		HasAudio:   hasAudio,
		HasVideo:   hasVideo,
	}
	l.ID = id
	return l
}

func TestEligibleLessonsBlindRequiresAudio(t *testing.T) {
	lessons := []model.Lesson{
		catalogueLesson(1, true, true),
		catalogueLesson(2, false, true), // 无音轨，盲生跳过
		catalogueLesson(3, true, false),
	}

	eligible := EligibleLessons(studentWith(model.ProfileBlind), lessons)
	require.Len(t, eligible, 2)
	assert.Equal(t, uint(1), eligible[0].ID)
	assert.Equal(t, uint(3), eligible[1].ID)
}

func TestEligibleLessonsDeafRequiresVideo(t *testing.T) {
	lessons := []model.Lesson{
		catalogueLesson(1, true, false), // 纯音频，聋生跳过
		catalogueLesson(2, false, true),
	}

	eligible := EligibleLessons(studentWith(model.ProfileDeaf), lessons)
	require.Len(t, eligible, 1)
	assert.Equal(t, uint(2), eligible[0].ID)
}

func TestEligibleLessonsPersonalizedTarget(t *testing.T) {
	other := uint(99)
	mine := uint(42)

	l1 := catalogueLesson(1, true, true)
	l1.TargetStudentID = &other
	l2 := catalogueLesson(2, true, true)
	l2.TargetStudentID = &mine
	l3 := catalogueLesson(3, true, true)

	eligible := EligibleLessons(studentWith(model.ProfileGeneral), []model.Lesson{l1, l2, l3})
	require.Len(t, eligible, 2)
	assert.Equal(t, uint(2), eligible[0].ID)
	assert.Equal(t, uint(3), eligible[1].ID)
}

func TestModeForProfiles(t *testing.T) {
	assert.Equal(t, model.ModeAudio, ModeFor(model.ProfileBlind))
	assert.Equal(t, model.ModeVideoMuted, ModeFor(model.ProfileDeaf))
	assert.Equal(t, model.ModeVideo, ModeFor(model.ProfileADHD))
	assert.Equal(t, model.ModeVideo, ModeFor(model.ProfileGeneral))
}

// 串行解锁：恰好一课解锁中，之前完成，之后锁定
func TestLessonStatesExactlyOneActive(t *testing.T) {
	lessons := []model.Lesson{
		catalogueLesson(1, true, true),
		catalogueLesson(2, true, true),
		catalogueLesson(3, true, true),
	}
	track := freshTrack("Class 1")
	track.CompletedLessonIDs.Add(1)

	states := LessonStates(track, lessons)
	require.Len(t, states, 3)
	assert.Equal(t, model.StateCompleted, states[0])
	assert.Equal(t, model.StateActive, states[1])
	assert.Equal(t, model.StateLocked, states[2])
}

func TestLessonStatesSummaryVerifiedUnlocksTest(t *testing.T) {
	lessons := []model.Lesson{
		catalogueLesson(1, true, true),
		catalogueLesson(2, true, true),
	}
	track := freshTrack("Class 1")
	track.VerifiedSummaries.Add(1)

	states := LessonStates(track, lessons)
	assert.Equal(t, model.StateTestReady, states[0])
	assert.Equal(t, model.StateLocked, states[1])
}

func TestActiveLessonSkipsCompleted(t *testing.T) {
	lessons := []model.Lesson{
		catalogueLesson(1, true, true),
		catalogueLesson(2, true, true),
	}
	track := freshTrack("Class 1")
	track.CompletedLessonIDs.Add(1)

	active := ActiveLesson(track, lessons)
	require.NotNil(t, active)
	assert.Equal(t, uint(2), active.ID)
}

func TestPhaseAwaitingFinalWhenAllComplete(t *testing.T) {
	lessons := []model.Lesson{
		catalogueLesson(1, true, true),
		catalogueLesson(2, true, true),
	}
	track := freshTrack("Class 1")

	assert.Equal(t, model.PhaseLearning, Phase(track, lessons))

	track.CompletedLessonIDs.Add(1)
	track.CompletedLessonIDs.Add(2)
	assert.Equal(t, model.PhaseAwaitingFinalExam, Phase(track, lessons))
}

func TestSimplifyAfterFailOrIntervention(t *testing.T) {
	track := freshTrack("Class 1")
	assert.False(t, simplifyTest(track, 1))

	track.RecordFail(1)
	assert.True(t, simplifyTest(track, 1))
	assert.False(t, simplifyTest(track, 2)) // 连败按课计

	track = freshTrack("Class 1")
	track.ActiveIntervention = model.InterventionSimplify
	track.InterventionSubject = model.ScopeAll
	assert.True(t, simplifyTest(track, 1))

	// 干预作用域不含本学科时不生效
	track.InterventionSubject = string(model.SubjectScience)
	assert.False(t, simplifyTest(track, 1))
}
