package service

import (
	"errors"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 内存预警存储：按 (student, subject, lesson) 查未解决项
type alertSinkStub struct {
	alerts     []model.Alert
	lookupErr  error
	createErr  error
	createHits int
}

func (s *alertSinkStub) UnresolvedFor(studentID uint, subject model.Subject, lessonID uint) (*model.Alert, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	for i := range s.alerts {
		a := &s.alerts[i]
		if a.StudentID == studentID && a.Subject == subject && a.LessonID == lessonID && a.Status != model.AlertResolved {
			return a, nil
		}
	}
	return nil, nil
}

func (s *alertSinkStub) Create(alert *model.Alert) error {
	s.createHits++
	if s.createErr != nil {
		return s.createErr
	}
	s.alerts = append(s.alerts, *alert)
	return nil
}

// 第三次连败恰好发一条 pending_guardian 预警，第四次不再发
func TestThirdConsecutiveFailRaisesSingleAlert(t *testing.T) {
	logger.Log = zap.NewNop()
	sink := &alertSinkStub{}
	svc := &ProgressionService{AlertRepo: sink, Progression: progressionConfig()}

	track := freshTrack("Class 1")
	lesson := lessonWithID(7)

	// 前两次连败未达阈值
	for i := 0; i < svc.Progression.MaxFailStreak-1; i++ {
		streak := track.RecordFail(lesson.ID)
		assert.Less(t, streak, svc.Progression.MaxFailStreak)
	}

	streak := track.RecordFail(lesson.ID)
	require.Equal(t, svc.Progression.MaxFailStreak, streak)
	assert.True(t, svc.raiseAlert(1, model.SubjectMaths, lesson, streak))
	require.Len(t, sink.alerts, 1)
	assert.Equal(t, model.AlertPendingGuardian, sink.alerts[0].Status)
	assert.Equal(t, lesson.ID, sink.alerts[0].LessonID)

	// 第四次连败：同课程已有未解决预警，不重复发
	streak = track.RecordFail(lesson.ID)
	assert.False(t, svc.raiseAlert(1, model.SubjectMaths, lesson, streak))
	assert.Len(t, sink.alerts, 1)
	assert.Equal(t, 1, sink.createHits)
}

// 预警已解决后再次触发阈值 → 允许发新预警
func TestAlertRaisedAgainAfterResolution(t *testing.T) {
	logger.Log = zap.NewNop()
	sink := &alertSinkStub{}
	svc := &ProgressionService{AlertRepo: sink, Progression: progressionConfig()}
	lesson := lessonWithID(7)

	assert.True(t, svc.raiseAlert(1, model.SubjectMaths, lesson, 3))
	sink.alerts[0].Status = model.AlertResolved

	assert.True(t, svc.raiseAlert(1, model.SubjectMaths, lesson, 4))
	assert.Equal(t, 2, sink.createHits)
}

// 预警是尽力而为：存储故障只吞掉，不影响判分
func TestAlertFailureIsSwallowed(t *testing.T) {
	logger.Log = zap.NewNop()
	lesson := lessonWithID(7)

	svc := &ProgressionService{
		AlertRepo:   &alertSinkStub{lookupErr: errors.New("db down")},
		Progression: progressionConfig(),
	}
	assert.False(t, svc.raiseAlert(1, model.SubjectMaths, lesson, 3))

	svc = &ProgressionService{
		AlertRepo:   &alertSinkStub{createErr: errors.New("db down")},
		Progression: progressionConfig(),
	}
	assert.False(t, svc.raiseAlert(1, model.SubjectMaths, lesson, 3))
}
