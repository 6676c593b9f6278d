package service

import (
	"context"
	"encoding/json"
	"fmt"
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/repository"
	"inclusive_edu_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	boardCacheKeyPrefix = "lesson_board:"
	boardCacheTTL       = time.Minute
)

// ContentService 内容准入过滤器：按学生无障碍画像与学科轨道
// 选出可见课程、定呈现方式、按目录顺序做串行解锁。
type ContentService struct {
	LessonRepo   *repository.LessonRepository
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
	Progression  *config.ProgressionConfig
}

func NewContentService(lessonRepo *repository.LessonRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client, progression *config.ProgressionConfig) *ContentService {
	return &ContentService{
		LessonRepo:   lessonRepo,
		QuestionRepo: questionRepo,
		Redis:        rdb,
		Progression:  progression,
	}
}

// LessonView 课程在某个学生视角下的完整状态
type LessonView struct {
	Lesson         model.Lesson           `json:"lesson"`
	State          model.LessonState      `json:"state"`
	Mode           model.PresentationMode `json:"mode"`
	TestUnlocked   bool                   `json:"testUnlocked"`
	TestSimplified bool                   `json:"testSimplified"`
}

type LessonBoard struct {
	Subject    model.Subject    `json:"subject"`
	ClassLevel string           `json:"classLevel"`
	Phase      model.TrackPhase `json:"phase"`
	ExamStatus model.ExamStatus `json:"examStatus"`
	Lessons    []LessonView     `json:"lessons"`
}

// ModeFor 呈现方式：盲生纯音频；聋生视频静音加字幕约定；其他默认视频。
func ModeFor(profile model.AccessibilityProfile) model.PresentationMode {
	switch profile {
	case model.ProfileBlind:
		return model.ModeAudio
	case model.ProfileDeaf:
		return model.ModeVideoMuted
	default:
		return model.ModeVideo
	}
}

// EligibleLessons 可见课程集：学科与班级在仓储层已过滤，这里再按
// 个性化目标与无障碍能力过滤。盲生绝不提供无音频的课，
// 聋生绝不提供无视频的课——不合适的课直接跳过，顺位让给下一课。
func EligibleLessons(student *model.Student, lessons []model.Lesson) []model.Lesson {
	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if !l.VisibleTo(student.ID) {
			continue
		}
		switch student.Accessibility {
		case model.ProfileBlind:
			if !l.HasAudio {
				continue
			}
		case model.ProfileDeaf:
			if !l.HasVideo {
				continue
			}
		default:
			if !l.HasVideo && !l.HasAudio {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

// LessonStates 串行解锁：目录序里恰好一课处于 ACTIVE（或其进阶态），
// 之前的全部 COMPLETED，之后的全部 LOCKED。
// 摘要校验通过后主题测验立即可达（SUMMARY_VERIFIED 与 TEST_READY
// 在同一事务内连续发生，对外观察到的稳定态是 TEST_READY）。
func LessonStates(track *model.SubjectTrack, eligible []model.Lesson) []model.LessonState {
	states := make([]model.LessonState, len(eligible))
	activeSeen := false
	for i, l := range eligible {
		switch {
		case track.CompletedLessonIDs.Has(l.ID):
			states[i] = model.StateCompleted
		case !activeSeen:
			activeSeen = true
			if track.VerifiedSummaries.Has(l.ID) {
				states[i] = model.StateTestReady
			} else {
				states[i] = model.StateActive
			}
		default:
			states[i] = model.StateLocked
		}
	}
	return states
}

// ActiveLesson 当前解锁中的课程；本班课程全部完成时返回 nil。
func ActiveLesson(track *model.SubjectTrack, eligible []model.Lesson) *model.Lesson {
	for i := range eligible {
		if !track.CompletedLessonIDs.Has(eligible[i].ID) {
			return &eligible[i]
		}
	}
	return nil
}

// Phase 本班可见课程全部完成则进入等待期末阶段。
func Phase(track *model.SubjectTrack, eligible []model.Lesson) model.TrackPhase {
	if len(eligible) > 0 && ActiveLesson(track, eligible) == nil {
		return model.PhaseAwaitingFinalExam
	}
	return model.PhaseLearning
}

// simplifyTest 失败过一次，或管理员下发了覆盖本学科的简化干预，
// 都改发简化卷。
func simplifyTest(track *model.SubjectTrack, lessonID uint) bool {
	return track.FailStreak(lessonID) >= 1 || track.SimplifyForced()
}

// Board 学生某学科的课程面板，带一分钟的redis缓存。
func (s *ContentService) Board(ctx context.Context, student *model.Student, subject model.Subject) (*LessonBoard, error) {
	track := student.Track(subject)
	if track == nil {
		return nil, util.ErrTrackNotFound
	}

	cacheKey := boardCacheKey(student.ID, subject)
	if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var board LessonBoard
		if json.Unmarshal([]byte(val), &board) == nil {
			return &board, nil
		}
	}

	lessons, err := s.LessonRepo.ForLevel(subject, track.ClassLevel)
	if err != nil {
		return nil, err
	}

	eligible := EligibleLessons(student, lessons)
	states := LessonStates(track, eligible)
	mode := ModeFor(student.Accessibility)

	board := &LessonBoard{
		Subject:    subject,
		ClassLevel: track.ClassLevel,
		Phase:      Phase(track, eligible),
		ExamStatus: track.ExamStatus,
		Lessons:    make([]LessonView, len(eligible)),
	}
	for i, l := range eligible {
		board.Lessons[i] = LessonView{
			Lesson:         l,
			State:          states[i],
			Mode:           mode,
			TestUnlocked:   states[i] == model.StateTestReady,
			TestSimplified: simplifyTest(track, l.ID),
		}
	}

	if data, err := json.Marshal(board); err == nil {
		s.Redis.Set(ctx, cacheKey, data, boardCacheTTL)
	}

	return board, nil
}

// InvalidateBoard 任何写事务提交后调用，避免读到过期面板。
func (s *ContentService) InvalidateBoard(ctx context.Context, studentID uint, subject model.Subject) {
	s.Redis.Del(ctx, boardCacheKey(studentID, subject))
}

func boardCacheKey(studentID uint, subject model.Subject) string {
	return fmt.Sprintf("%s%d:%s", boardCacheKeyPrefix, studentID, subject)
}

// CurrentTest 当前解锁课程的主题测验卷。摘要未校验时测验不可达，
// 按 StaleState 拒绝；命中简化条件时发简化变体。
// 评分与出卷共用本方法，保证学生看到的卷和判的卷是同一套。
func (s *ContentService) CurrentTest(student *model.Student, subject model.Subject) (*model.Test, *model.Lesson, error) {
	track := student.Track(subject)
	if track == nil {
		return nil, nil, util.ErrTrackNotFound
	}

	lessons, err := s.LessonRepo.ForLevel(subject, track.ClassLevel)
	if err != nil {
		return nil, nil, err
	}

	eligible := EligibleLessons(student, lessons)
	lesson := ActiveLesson(track, eligible)
	if lesson == nil {
		return nil, nil, util.ErrNoAccessibleNext
	}
	if !track.VerifiedSummaries.Has(lesson.ID) {
		return nil, nil, util.ErrStaleState
	}

	questions, err := s.QuestionRepo.ForLesson(lesson.ID)
	if err != nil {
		return nil, nil, err
	}

	test := &model.Test{
		Kind:       lessonTestKind(questions),
		Subject:    subject,
		ClassLevel: track.ClassLevel,
		Questions:  questions,
	}
	if simplifyTest(track, lesson.ID) {
		test.Simplified = true
		test.Questions = SimplifiedQuestions(subject, questions)
	}

	return test, lesson, nil
}

// lessonTestKind 课程卷的类型由题库决定：模块收官课挂的是 module 题，
// 其余按主题测验处理。
func lessonTestKind(questions []model.Question) model.TestKind {
	for _, q := range questions {
		if q.Kind == model.TestModule {
			return model.TestModule
		}
	}
	return model.TestTopic
}

// FinalExam 期末试卷；仅在 AWAITING_FINAL_EXAM 阶段可取。
func (s *ContentService) FinalExam(student *model.Student, subject model.Subject) (*model.Test, error) {
	track := student.Track(subject)
	if track == nil {
		return nil, util.ErrTrackNotFound
	}

	lessons, err := s.LessonRepo.ForLevel(subject, track.ClassLevel)
	if err != nil {
		return nil, err
	}
	if Phase(track, EligibleLessons(student, lessons)) != model.PhaseAwaitingFinalExam {
		return nil, util.ErrExamNotEligible
	}

	questions, err := s.QuestionRepo.QuestionsFor(subject, track.ClassLevel, model.TestFinal)
	if err != nil {
		return nil, err
	}

	return &model.Test{
		Kind:       model.TestFinal,
		Subject:    subject,
		ClassLevel: track.ClassLevel,
		Questions:  questions,
	}, nil
}
