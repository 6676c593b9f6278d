package repository

import (
	"errors"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ForLevel 目录序返回某学科某班级的全部课程（含个性化课程，
// 可见性过滤在内容服务里做）。
func (r *LessonRepository) ForLevel(subject model.Subject, classLevel string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("subject = ? AND class_level = ?", subject, classLevel).
		Order("sort_order asc, id asc").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) List(page, limit int) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64
	if err := r.DB.Model(&model.Lesson{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("subject asc, class_level asc, sort_order asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&lessons).Error
	return lessons, total, err
}
