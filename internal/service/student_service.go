package service

import (
	"errors"
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/repository"
	"inclusive_edu_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// StudentService 学生档案与监护关系的管理，以及监护人/管理员
// 的只读进度视图。
type StudentService struct {
	UserRepo    *repository.UserRepository
	StudentRepo *repository.StudentRepository
	AlertRepo   *repository.AlertRepository
	Progression *config.ProgressionConfig
}

func NewStudentService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository, alertRepo *repository.AlertRepository, progression *config.ProgressionConfig) *StudentService {
	return &StudentService{
		UserRepo:    userRepo,
		StudentRepo: studentRepo,
		AlertRepo:   alertRepo,
		Progression: progression,
	}
}

type CreateStudentInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Accessibility string `json:"accessibility"`
}

// CreateStudent 监护人为孩子建档：学生账号、档案、每学科一条
// 从最低班级起步的轨道，一次建齐。无障碍画像在这里解析一次，
// 之后全程只用枚举值。
func (s *StudentService) CreateStudent(guardianID uint, input CreateStudentInput) (*model.Student, error) {
	_, err := s.UserRepo.FindByEmail(input.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     model.RoleStudent,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	student := &model.Student{
		UserID:        user.ID,
		GuardianID:    guardianID,
		Name:          input.Name,
		Accessibility: model.ParseAccessibility(input.Accessibility),
	}
	for _, name := range s.Progression.Subjects {
		student.Tracks = append(student.Tracks, model.SubjectTrack{
			Subject:            model.Subject(name),
			ClassLevel:         s.Progression.LowestLevel(),
			CompletedLessonIDs: model.UintSet{},
			CompletedTopicIDs:  model.UintSet{},
			CompletedModuleIDs: model.UintSet{},
			VerifiedSummaries:  model.UintSet{},
			FailAttempts:       model.FailCountMap{},
			ActiveIntervention: model.InterventionNone,
			ExamStatus:         model.ExamNotEligible,
			ExamResult:         model.ExamResultNone,
		})
	}
	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) GetByID(id uint) (*model.Student, error) {
	return s.StudentRepo.FindByID(id)
}

// StudentForUser 学生本人登录后定位自己的档案。
func (s *StudentService) StudentForUser(userID uint) (*model.Student, error) {
	return s.StudentRepo.FindByUserID(userID)
}

// OwnedBy 监护人访问学生资源前的归属检查。
func (s *StudentService) OwnedBy(studentID, guardianID uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if student.GuardianID != guardianID {
		return nil, util.ErrPermissionDenied
	}
	return student, nil
}

// ProgressView 监护人看到的进度快照：全部学科轨道加未关闭的预警。
type ProgressView struct {
	Student model.Student `json:"student"`
	Alerts  []model.Alert `json:"alerts"`
}

func (s *StudentService) GuardianProgress(guardianID uint) ([]ProgressView, error) {
	students, err := s.StudentRepo.ListByGuardian(guardianID)
	if err != nil {
		return nil, err
	}

	views := make([]ProgressView, len(students))
	for i, st := range students {
		alerts, err := s.AlertRepo.ListForStudent(st.ID)
		if err != nil {
			return nil, err
		}
		views[i] = ProgressView{Student: st, Alerts: alerts}
	}
	return views, nil
}

// Overview 管理端概览：各学科班级人数分布与待处理预警数。
type Overview struct {
	StudentsPerLevel map[string]map[string]int64 `json:"studentsPerLevel"`
	UnresolvedAlerts int64                       `json:"unresolvedAlerts"`
}

func (s *StudentService) AdminOverview() (*Overview, error) {
	perLevel := make(map[string]map[string]int64, len(s.Progression.Subjects))
	for _, name := range s.Progression.Subjects {
		counts, err := s.StudentRepo.CountByClassLevel(model.Subject(name))
		if err != nil {
			return nil, err
		}
		perLevel[name] = counts
	}

	unresolved, err := s.AlertRepo.CountUnresolved()
	if err != nil {
		return nil, err
	}

	return &Overview{
		StudentsPerLevel: perLevel,
		UnresolvedAlerts: unresolved,
	}, nil
}
