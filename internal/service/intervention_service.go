package service

import (
	"context"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/repository"
	"inclusive_edu_backend/internal/util"
	"inclusive_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InterventionService 预警流转（监护人升级、管理员处置）与
// 管理员干预（重置尝试 / 简化内容）。干预幂等：重复下发同一干预
// 不改变任何状态。
type InterventionService struct {
	StudentRepo *repository.StudentRepository
	AlertRepo   *repository.AlertRepository
	Content     *ContentService
}

func NewInterventionService(studentRepo *repository.StudentRepository, alertRepo *repository.AlertRepository, content *ContentService) *InterventionService {
	return &InterventionService{
		StudentRepo: studentRepo,
		AlertRepo:   alertRepo,
		Content:     content,
	}
}

// GuardianAlerts 监护人名下学生的全部预警。
func (s *InterventionService) GuardianAlerts(guardianID uint) ([]model.Alert, error) {
	students, err := s.StudentRepo.ListByGuardian(guardianID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(students))
	for i, st := range students {
		ids[i] = st.ID
	}
	return s.AlertRepo.ListForStudents(ids)
}

// EscalateAlert 监护人把待处理预警升级给管理员，附说明。
// 只能升级自己学生的、仍处于 pending_guardian 的预警。
func (s *InterventionService) EscalateAlert(guardianID, alertID uint, comment string) (*model.Alert, error) {
	alert, err := s.AlertRepo.FindByID(alertID)
	if err != nil {
		return nil, err
	}

	student, err := s.StudentRepo.FindByID(alert.StudentID)
	if err != nil {
		return nil, err
	}
	if student.GuardianID != guardianID {
		return nil, util.ErrPermissionDenied
	}
	if alert.Status != model.AlertPendingGuardian {
		return nil, util.ErrStaleState
	}

	alert.Status = model.AlertPendingAdmin
	alert.GuardianComment = comment
	if err := s.AlertRepo.Update(alert); err != nil {
		return nil, err
	}

	logger.Log.Info("预警已升级给管理员",
		zap.Uint("alertId", alert.ID), zap.Uint("studentId", alert.StudentID))
	return alert, nil
}

// PendingAdminAlerts 等待管理员处置的预警队列。
func (s *InterventionService) PendingAdminAlerts() ([]model.Alert, error) {
	return s.AlertRepo.ListByStatus(model.AlertPendingAdmin)
}

// ApplyIntervention 管理员干预，作用域为单个学科或 "all"。
// RESET_ATTEMPTS 清掉作用域内的连败计数（简化条件随之消失）；
// SIMPLIFY_CONTENT 给作用域内学科强制发简化卷。
// 两种干预都顺带解决该学生在作用域内的未解决预警。
func (s *InterventionService) ApplyIntervention(ctx context.Context, adminID, studentID uint, kind model.InterventionKind, scope string) (*model.Student, error) {
	if kind != model.InterventionReset && kind != model.InterventionSimplify {
		return nil, util.ErrUnknownKind
	}
	if err := validateScope(scope); err != nil {
		return nil, err
	}

	var snapshot model.Student
	err := s.StudentRepo.WithStudent(studentID, func(tx *gorm.DB, student *model.Student) error {
		for i := range student.Tracks {
			applyIntervention(&student.Tracks[i], kind, scope)
		}
		snapshot = *student
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.AlertRepo.ResolveScope(studentID, scope, adminID); err != nil {
		logger.Log.Warn("预警批量解决失败", zap.Uint("studentId", studentID), zap.Error(err))
	}

	s.invalidateScope(ctx, &snapshot, scope)
	logger.Log.Info("干预已下发",
		zap.Uint("adminId", adminID), zap.Uint("studentId", studentID),
		zap.String("kind", string(kind)), zap.String("scope", scope))
	return &snapshot, nil
}

// ClearIntervention 撤销简化干预，作用域语义与下发一致。
func (s *InterventionService) ClearIntervention(ctx context.Context, studentID uint, scope string) (*model.Student, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}

	var snapshot model.Student
	err := s.StudentRepo.WithStudent(studentID, func(tx *gorm.DB, student *model.Student) error {
		for i := range student.Tracks {
			track := &student.Tracks[i]
			if !model.ScopeCovers(scope, track.Subject) {
				continue
			}
			track.ActiveIntervention = model.InterventionNone
			track.InterventionSubject = ""
		}
		snapshot = *student
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateScope(ctx, &snapshot, scope)
	return &snapshot, nil
}

// applyIntervention 干预在单条轨道上的落点，重复下发不改变结果。
// 作用域外的轨道原样跳过；重置连败也记录为当前干预，便于审计回看。
func applyIntervention(track *model.SubjectTrack, kind model.InterventionKind, scope string) {
	if !model.ScopeCovers(scope, track.Subject) {
		return
	}
	switch kind {
	case model.InterventionReset:
		track.ResetAllFails()
		track.ActiveIntervention = model.InterventionReset
		track.InterventionSubject = scope
	case model.InterventionSimplify:
		track.ActiveIntervention = model.InterventionSimplify
		track.InterventionSubject = scope
	}
}

func (s *InterventionService) invalidateScope(ctx context.Context, student *model.Student, scope string) {
	for _, track := range student.Tracks {
		if model.ScopeCovers(scope, track.Subject) {
			s.Content.InvalidateBoard(ctx, student.ID, track.Subject)
		}
	}
}

func validateScope(scope string) error {
	if scope == model.ScopeAll || scope == string(model.SubjectMaths) || scope == string(model.SubjectScience) {
		return nil
	}
	return util.ErrUnknownScope
}
