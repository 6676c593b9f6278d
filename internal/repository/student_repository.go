package repository

import (
	"errors"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("Tracks").First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) FindByUserID(userID uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("Tracks").Where("user_id = ?", userID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) ListByGuardian(guardianID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.Preload("Tracks").Where("guardian_id = ?", guardianID).Find(&students).Error
	return students, err
}

// WithStudent 单学生写入串行化：一个事务内行锁读出完整聚合，
// 回调就地修改，整体落库。写失败时任何内存变更都不会被后续读观察到。
// 不同学生之间没有共享可变状态，互不阻塞。
func (r *StudentRepository) WithStudent(id uint, fn func(tx *gorm.DB, s *model.Student) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var student model.Student
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Tracks").
			First(&student, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrStudentNotFound
		}
		if err != nil {
			return err
		}

		if err := fn(tx, &student); err != nil {
			return err
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&student).Error
	})
}

// CountByClassLevel 管理端概览：某学科各班级的学生数
func (r *StudentRepository) CountByClassLevel(subject model.Subject) (map[string]int64, error) {
	type row struct {
		ClassLevel string
		N          int64
	}
	var rows []row
	err := r.DB.Model(&model.SubjectTrack{}).
		Select("class_level, count(*) as n").
		Where("subject = ?", subject).
		Group("class_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.ClassLevel] = rw.N
	}
	return out, nil
}
