package service

import (
	"context"
	"fmt"
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/repository"
	"inclusive_edu_backend/internal/util"
	"inclusive_edu_backend/pkg/logger"
	"inclusive_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertSink 判分路径用到的预警读写子集。
type AlertSink interface {
	UnresolvedFor(studentID uint, subject model.Subject, lessonID uint) (*model.Alert, error)
	Create(alert *model.Alert) error
}

// ProgressionService 推进状态机：摘要校验、主题测验判分、
// 期末考试生命周期。所有对学生状态的写入都走 WithStudent，
// 一个学生同一时刻只有一个写事务在跑。
type ProgressionService struct {
	StudentRepo  *repository.StudentRepository
	LessonRepo   *repository.LessonRepository
	QuestionRepo *repository.QuestionRepository
	AlertRepo    AlertSink
	Content      *ContentService
	Promo        *PromotionEngine
	Progression  *config.ProgressionConfig
}

func NewProgressionService(
	studentRepo *repository.StudentRepository,
	lessonRepo *repository.LessonRepository,
	questionRepo *repository.QuestionRepository,
	alertRepo AlertSink,
	content *ContentService,
	promo *PromotionEngine,
	progression *config.ProgressionConfig,
) *ProgressionService {
	return &ProgressionService{
		StudentRepo:  studentRepo,
		LessonRepo:   lessonRepo,
		QuestionRepo: questionRepo,
		AlertRepo:    alertRepo,
		Content:      content,
		Promo:        promo,
		Progression:  progression,
	}
}

// GradeOutcome 一次判分对调用方可见的全部结果。
type GradeOutcome struct {
	Score       int                `json:"score"`
	Passed      bool               `json:"passed"`
	Promoted    bool               `json:"promoted"`
	Result      model.TrackResult  `json:"result"`
	ClassLevel  string             `json:"classLevel"`
	FailStreak  int                `json:"failStreak"`
	AlertRaised bool               `json:"alertRaised"`
	Track       model.SubjectTrack `json:"track"`
}

// VerifySummary 课程摘要的外部校验信号：只有当前解锁中的课
// 才能被校验；已校验过的重复信号不报错也不重复记录。
func (s *ProgressionService) VerifySummary(ctx context.Context, studentID uint, subject model.Subject, lessonID uint) error {
	err := s.StudentRepo.WithStudent(studentID, func(tx *gorm.DB, student *model.Student) error {
		track := student.Track(subject)
		if track == nil {
			return util.ErrTrackNotFound
		}
		if track.VerifiedSummaries.Has(lessonID) {
			return nil
		}

		lessons, err := s.LessonRepo.ForLevel(subject, track.ClassLevel)
		if err != nil {
			return err
		}
		active := ActiveLesson(track, EligibleLessons(student, lessons))
		if active == nil || active.ID != lessonID {
			return util.ErrSummaryNotActive
		}

		track.VerifiedSummaries.Add(lessonID)
		return nil
	})
	if err != nil {
		return err
	}

	s.Content.InvalidateBoard(ctx, studentID, subject)
	return nil
}

// SubmitTopicTest 判当前解锁课程的主题测验。
// 卷子在事务内重新装配（含简化分支），和出卷口径一致；
// 非 TEST_READY 的提交按 StaleState 拒绝，不重判不改状态。
func (s *ProgressionService) SubmitTopicTest(ctx context.Context, studentID uint, subject model.Subject, answers []*int) (*GradeOutcome, error) {
	var outcome GradeOutcome
	kind := model.TestTopic

	err := s.StudentRepo.WithStudent(studentID, func(tx *gorm.DB, student *model.Student) error {
		track := student.Track(subject)
		if track == nil {
			return util.ErrTrackNotFound
		}

		lessons, err := s.LessonRepo.ForLevel(subject, track.ClassLevel)
		if err != nil {
			return err
		}
		eligible := EligibleLessons(student, lessons)
		lesson := ActiveLesson(track, eligible)
		if lesson == nil {
			return util.ErrNoAccessibleNext
		}
		if !track.VerifiedSummaries.Has(lesson.ID) {
			return util.ErrStaleState
		}

		questions, err := s.QuestionRepo.ForLesson(lesson.ID)
		if err != nil {
			return err
		}
		kind = lessonTestKind(questions)
		if simplifyTest(track, lesson.ID) {
			questions = SimplifiedQuestions(subject, questions)
		}

		score, err := Score(questions, answers)
		if err != nil {
			return err
		}

		result, err := s.Promo.Apply(track, kind, score, lesson)
		if err != nil {
			return err
		}

		outcome = GradeOutcome{
			Score:      score,
			Passed:     result.Passed,
			Result:     track.LastResult,
			ClassLevel: track.ClassLevel,
		}

		if result.Passed {
			// 本班课程全部完成 → 期末解锁
			if ActiveLesson(track, eligible) == nil {
				track.ExamStatus = model.ExamEligible
				track.ExamResult = model.ExamResultNone
			}
		} else {
			streak := track.RecordFail(lesson.ID)
			outcome.FailStreak = streak
			if streak >= s.Progression.MaxFailStreak {
				outcome.AlertRaised = s.raiseAlert(student.ID, subject, lesson, streak)
			}
		}

		outcome.Track = *track
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.GradeCounter.WithLabelValues(string(kind), gradeLabel(outcome.Passed)).Inc()
	s.Content.InvalidateBoard(ctx, studentID, subject)
	return &outcome, nil
}

func gradeLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

// raiseAlert 尽力而为：同一 (学生, 学科, 课程) 已有未解决预警就不再发；
// 写入失败只记日志，判分事务照常提交。
func (s *ProgressionService) raiseAlert(studentID uint, subject model.Subject, lesson *model.Lesson, streak int) bool {
	existing, err := s.AlertRepo.UnresolvedFor(studentID, subject, lesson.ID)
	if err != nil {
		logger.Log.Warn("预警查重失败，跳过本次预警",
			zap.Uint("studentId", studentID), zap.String("subject", string(subject)), zap.Error(err))
		return false
	}
	if existing != nil {
		return false
	}

	alert := &model.Alert{
		StudentID: studentID,
		Subject:   subject,
		LessonID:  lesson.ID,
		Status:    model.AlertPendingGuardian,
		Reason:    fmt.Sprintf("连续%d次未通过《%s》主题测验", streak, lesson.Title),
	}
	if err := s.AlertRepo.Create(alert); err != nil {
		logger.Log.Warn("预警写入失败",
			zap.Uint("studentId", studentID), zap.String("subject", string(subject)), zap.Error(err))
		return false
	}

	monitoring.AlertCounter.WithLabelValues(string(subject)).Inc()
	logger.Log.Info("升级预警已创建",
		zap.Uint("studentId", studentID), zap.String("subject", string(subject)),
		zap.Uint("lessonId", lesson.ID), zap.Int("failStreak", streak))
	return true
}

// SubmitFinalExam 监护人代交期末答卷：立即评分并进入 submitted，
// 升班结论留给管理员批卷环节落定。
func (s *ProgressionService) SubmitFinalExam(ctx context.Context, studentID uint, subject model.Subject, answers []*int) (int, error) {
	var score int

	err := s.StudentRepo.WithStudent(studentID, func(tx *gorm.DB, student *model.Student) error {
		track := student.Track(subject)
		if track == nil {
			return util.ErrTrackNotFound
		}
		if track.ExamStatus != model.ExamEligible {
			return util.ErrExamNotEligible
		}

		questions, err := s.QuestionRepo.QuestionsFor(subject, track.ClassLevel, model.TestFinal)
		if err != nil {
			return err
		}

		score, err = Score(questions, answers)
		if err != nil {
			return err
		}

		track.LastScore = score
		track.ExamStatus = model.ExamSubmitted
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.Content.InvalidateBoard(ctx, studentID, subject)
	return score, nil
}

// GradeExam 管理员批卷：把已提交的分数送进升班引擎。
// 升班是唯一能改 ClassLevel 的路径。
func (s *ProgressionService) GradeExam(ctx context.Context, studentID uint, subject model.Subject) (*GradeOutcome, error) {
	var outcome GradeOutcome

	err := s.StudentRepo.WithStudent(studentID, func(tx *gorm.DB, student *model.Student) error {
		track := student.Track(subject)
		if track == nil {
			return util.ErrTrackNotFound
		}
		if track.ExamStatus != model.ExamSubmitted {
			return util.ErrExamNotSubmitted
		}

		result, err := s.Promo.Apply(track, model.TestFinal, track.LastScore, nil)
		if err != nil {
			return err
		}

		outcome = GradeOutcome{
			Score:      track.LastScore,
			Passed:     result.Passed,
			Promoted:   result.Promoted,
			Result:     track.LastResult,
			ClassLevel: result.NewLevel,
			Track:      *track,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.GradeCounter.WithLabelValues(string(model.TestFinal), gradeLabel(outcome.Passed)).Inc()
	if outcome.Promoted {
		monitoring.PromotionCounter.WithLabelValues(string(subject)).Inc()
		logger.Log.Info("学生升班",
			zap.Uint("studentId", studentID), zap.String("subject", string(subject)),
			zap.String("newLevel", outcome.ClassLevel), zap.Int("score", outcome.Score))
	}
	s.Content.InvalidateBoard(ctx, studentID, subject)
	return &outcome, nil
}
