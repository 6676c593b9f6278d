package service

import (
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"
)

// PromotionEngine 对已评分的测验落定通过/升班结论。
// 班级只能经期末路径变化：结构上只有 final 分支能触碰 ClassLevel，
// 其他测验类型不存在修改班级的代码路径，也就无需事后"兜底回滚"。
type PromotionEngine struct {
	cfg *config.ProgressionConfig
}

func NewPromotionEngine(cfg *config.ProgressionConfig) *PromotionEngine {
	return &PromotionEngine{cfg: cfg}
}

type PromotionOutcome struct {
	Passed   bool   `json:"passed"`
	Promoted bool   `json:"promoted"`
	NewLevel string `json:"newLevel"`
}

// Apply 将一次评分结果应用到学科轨道。
// topic/module 及格只记录完成，绝不改班级；
// final 及格升一级并清空本班已完成课程（新课程表从零开始）；
// 其余类型走本引擎属于编程错误，返回 ErrInvalidPromotion。
func (e *PromotionEngine) Apply(track *model.SubjectTrack, kind model.TestKind, score int, lesson *model.Lesson) (PromotionOutcome, error) {
	if e.cfg.LevelIndex(track.ClassLevel) == -1 {
		return PromotionOutcome{}, util.ErrUnknownClassLevel
	}

	switch kind {
	case model.TestTopic:
		if lesson == nil {
			return PromotionOutcome{}, util.ErrLessonNotFound
		}
		return e.applyLessonTest(track, score, lesson, false), nil

	case model.TestModule:
		if lesson == nil {
			return PromotionOutcome{}, util.ErrLessonNotFound
		}
		return e.applyLessonTest(track, score, lesson, true), nil

	case model.TestFinal:
		return e.applyFinal(track, score), nil

	default:
		// placement 不走本引擎，未知类型一律拒绝
		return PromotionOutcome{}, util.ErrInvalidPromotion
	}
}

func (e *PromotionEngine) applyLessonTest(track *model.SubjectTrack, score int, lesson *model.Lesson, module bool) PromotionOutcome {
	track.LastScore = score

	if score < e.cfg.TopicPassThreshold {
		track.LastResult = model.ResultFail
		return PromotionOutcome{NewLevel: track.ClassLevel}
	}

	track.CompletedLessonIDs.Add(lesson.ID)
	if module {
		track.CompletedModuleIDs.Add(lesson.ID)
	} else {
		track.CompletedTopicIDs.Add(lesson.ID)
	}
	track.ResetFail(lesson.ID)
	track.LastResult = model.ResultTopicPass

	return PromotionOutcome{Passed: true, NewLevel: track.ClassLevel}
}

func (e *PromotionEngine) applyFinal(track *model.SubjectTrack, score int) PromotionOutcome {
	track.LastScore = score
	track.ExamStatus = model.ExamGraded

	if score < e.cfg.FinalPassThreshold {
		track.ExamResult = model.ExamResultFail
		track.LastResult = model.ResultFail
		return PromotionOutcome{NewLevel: track.ClassLevel}
	}

	track.ExamResult = model.ExamResultPass
	track.LastResult = model.ResultPromoted

	next := e.cfg.NextLevel(track.ClassLevel)
	if next == track.ClassLevel {
		// 已在最高班级：通过但不动级，也不清进度
		return PromotionOutcome{Passed: true, NewLevel: track.ClassLevel}
	}

	// 升班：新课程表从零开始。ExamStatus 保持 graded/pass，
	// 等新班级课程全部完成时再由推进服务重置为 eligible。
	track.ClassLevel = next
	track.CompletedLessonIDs = model.UintSet{}
	track.VerifiedSummaries = model.UintSet{}
	track.ResetAllFails()

	return PromotionOutcome{Passed: true, Promoted: true, NewLevel: next}
}
