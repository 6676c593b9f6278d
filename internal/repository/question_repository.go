package repository

import (
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// QuestionsFor 题库公开契约：按 (subject, classLevel, kind) 取有序题组。
// 查不到题组时返回 ErrQuestionSetEmpty，调用方不得默默当成空卷。
func (r *QuestionRepository) QuestionsFor(subject model.Subject, classLevel string, kind model.TestKind) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("subject = ? AND class_level = ? AND kind = ?", subject, classLevel, kind).
		Order("sort_order asc, id asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrQuestionSetEmpty
	}
	return questions, nil
}

// ForLesson 某课的主题测验题组
func (r *QuestionRepository) ForLesson(lessonID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("lesson_id = ? AND kind = ?", lessonID, model.TestTopic).
		Order("sort_order asc, id asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrQuestionSetEmpty
	}
	return questions, nil
}

// PlacementFor 某学科的全部安置诊断题，班级排序在安置引擎里
// 按配置的阶梯做（题库只保证同科不重复出级）。
func (r *QuestionRepository) PlacementFor(subject model.Subject) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("subject = ? AND kind = ?", subject, model.TestPlacement).
		Order("sort_order asc, id asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrQuestionSetEmpty
	}
	return questions, nil
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
