package repository

import (
	"errors"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"

	"gorm.io/gorm"
)

type AlertRepository struct {
	DB *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{DB: db}
}

func (r *AlertRepository) Create(alert *model.Alert) error {
	return r.DB.Create(alert).Error
}

func (r *AlertRepository) Update(alert *model.Alert) error {
	return r.DB.Save(alert).Error
}

func (r *AlertRepository) FindByID(id uint) (*model.Alert, error) {
	var alert model.Alert
	err := r.DB.First(&alert, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAlertNotFound
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// UnresolvedFor 同一 (student, subject, lesson) 的未解决预警，
// 用于保证幂等：已有未解决预警时不再新建。
func (r *AlertRepository) UnresolvedFor(studentID uint, subject model.Subject, lessonID uint) (*model.Alert, error) {
	var alert model.Alert
	err := r.DB.Where("student_id = ? AND subject = ? AND lesson_id = ? AND status <> ?",
		studentID, subject, lessonID, model.AlertResolved).
		First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *AlertRepository) ListByStatus(status model.AlertStatus) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.DB.Where("status = ?", status).Order("created_at desc").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) ListForStudent(studentID uint) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.DB.Where("student_id = ?", studentID).Order("created_at desc").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) ListForStudents(studentIDs []uint) ([]model.Alert, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var alerts []model.Alert
	err := r.DB.Where("student_id IN ?", studentIDs).Order("created_at desc").Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) CountUnresolved() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Alert{}).Where("status <> ?", model.AlertResolved).Count(&n).Error
	return n, err
}

// ResolveScope 将某学生在作用域内的全部未解决预警置为已解决
func (r *AlertRepository) ResolveScope(studentID uint, scope string, adminID uint) error {
	q := r.DB.Model(&model.Alert{}).
		Where("student_id = ? AND status <> ?", studentID, model.AlertResolved)
	if scope != model.ScopeAll {
		q = q.Where("subject = ?", scope)
	}
	return q.Updates(map[string]interface{}{
		"status":      model.AlertResolved,
		"resolved_by": adminID,
	}).Error
}
