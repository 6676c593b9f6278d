package service

import (
	"context"
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/repository"
	"inclusive_edu_backend/internal/util"
	"sort"

	"gorm.io/gorm"
)

// PlacementService 入学诊断：按学科做一次性摸底，
// 答错即触顶，定下每条学科轨道的起始班级。
type PlacementService struct {
	StudentRepo  *repository.StudentRepository
	QuestionRepo *repository.QuestionRepository
	Content      *ContentService
	Progression  *config.ProgressionConfig
}

func NewPlacementService(studentRepo *repository.StudentRepository, questionRepo *repository.QuestionRepository, content *ContentService, progression *config.ProgressionConfig) *PlacementService {
	return &PlacementService{
		StudentRepo:  studentRepo,
		QuestionRepo: questionRepo,
		Content:      content,
		Progression:  progression,
	}
}

// PlacementTest 某学科的诊断卷：题目按班级从低到高排好。
func (s *PlacementService) PlacementTest(subject model.Subject) (*model.Test, error) {
	questions, err := s.QuestionRepo.PlacementFor(subject)
	if err != nil {
		return nil, err
	}
	orderByLadder(s.Progression, questions)
	return &model.Test{
		Kind:      model.TestPlacement,
		Subject:   subject,
		Questions: questions,
	}, nil
}

// orderByLadder 诊断题按配置的班级阶梯稳定排序，同级保持题库顺序。
func orderByLadder(cfg *config.ProgressionConfig, questions []model.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		return cfg.LevelIndex(questions[i].ClassLevel) < cfg.LevelIndex(questions[j].ClassLevel)
	})
}

// PlaceLevel 答错即触顶：题目按班级升序走，第一道答错（或未答）
// 的题所在班级就是落点；全对则落在题库覆盖到的最高班，
// 不会越过诊断卷实际考查的范围。
func PlaceLevel(cfg *config.ProgressionConfig, questions []model.Question, answers []*int) (string, error) {
	if len(questions) == 0 {
		return "", util.ErrInvalidTest
	}
	if len(answers) > len(questions) {
		return "", util.ErrAnswerCount
	}
	for i, q := range questions {
		if i >= len(answers) || answers[i] == nil || *answers[i] != q.CorrectOption {
			if cfg.LevelIndex(q.ClassLevel) < 0 {
				return "", util.ErrUnknownClassLevel
			}
			return q.ClassLevel, nil
		}
	}
	top := questions[len(questions)-1].ClassLevel
	if cfg.LevelIndex(top) < 0 {
		return "", util.ErrUnknownClassLevel
	}
	return top, nil
}

// SubmitPlacement 一次提交所有学科的诊断答案，原子地写入全部轨道
// 并置 PlacementDone。诊断只做一次，重复提交按冲突拒绝。
func (s *PlacementService) SubmitPlacement(ctx context.Context, studentID uint, answers map[model.Subject][]*int) (map[model.Subject]string, error) {
	placed := make(map[model.Subject]string, len(answers))

	err := s.StudentRepo.WithStudent(studentID, func(tx *gorm.DB, student *model.Student) error {
		if student.PlacementDone {
			return util.ErrPlacementDone
		}
		for _, name := range s.Progression.Subjects {
			subject := model.Subject(name)
			questions, err := s.QuestionRepo.PlacementFor(subject)
			if err != nil {
				return err
			}
			orderByLadder(s.Progression, questions)
			level, err := PlaceLevel(s.Progression, questions, answers[subject])
			if err != nil {
				return err
			}
			track := student.Track(subject)
			if track == nil {
				return util.ErrTrackNotFound
			}
			track.ClassLevel = level
			placed[subject] = level
		}
		student.PlacementDone = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	for subject := range placed {
		s.Content.InvalidateBoard(ctx, studentID, subject)
	}
	return placed, nil
}
