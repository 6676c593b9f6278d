package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type Subject string

const (
	SubjectMaths   Subject = "maths"
	SubjectScience Subject = "science"
)

// Numeric 学科的简化卷走算术恒等式模板，非数值学科走是非辨认题模板。
func (s Subject) Numeric() bool {
	return s == SubjectMaths
}

// ScopeAll 干预作用域：全部学科。
const ScopeAll = "all"

type TrackResult string

const (
	ResultNone      TrackResult = ""
	ResultPromoted  TrackResult = "PROMOTED"
	ResultTopicPass TrackResult = "TOPIC_PASS"
	ResultFail      TrackResult = "FAIL"
)

type InterventionKind string

const (
	InterventionNone     InterventionKind = "NONE"
	InterventionReset    InterventionKind = "RESET_ATTEMPTS"
	InterventionSimplify InterventionKind = "SIMPLIFY_CONTENT"
)

type ExamStatus string

const (
	ExamNotEligible ExamStatus = "not_eligible"
	ExamEligible    ExamStatus = "eligible"
	ExamSubmitted   ExamStatus = "submitted"
	ExamGraded      ExamStatus = "graded"
)

type ExamResult string

const (
	ExamResultNone ExamResult = "none"
	ExamResultPass ExamResult = "pass"
	ExamResultFail ExamResult = "fail"
)

// UintSet 以JSON数组落库的ID集合。
type UintSet []uint

func (s UintSet) Value() (driver.Value, error) {
	if s == nil {
		s = UintSet{}
	}
	return json.Marshal(s)
}

func (s *UintSet) Scan(value interface{}) error {
	if value == nil {
		*s = UintSet{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("unsupported column type for UintSet")
		}
		b = []byte(str)
	}
	if len(b) == 0 {
		*s = UintSet{}
		return nil
	}
	return json.Unmarshal(b, s)
}

func (s UintSet) Has(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s *UintSet) Add(id uint) {
	if !s.Has(id) {
		*s = append(*s, id)
	}
}

// FailCountMap lessonID → 连续失败次数，JSON对象落库。
type FailCountMap map[uint]int

func (m FailCountMap) Value() (driver.Value, error) {
	if m == nil {
		m = FailCountMap{}
	}
	return json.Marshal(m)
}

func (m *FailCountMap) Scan(value interface{}) error {
	if value == nil {
		*m = FailCountMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("unsupported column type for FailCountMap")
		}
		b = []byte(str)
	}
	if len(b) == 0 {
		*m = FailCountMap{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// SubjectTrack 一个学生在一个学科上的全部学业状态。
// 每个 (student, subject) 恒有且仅有一条，随学生创建、随学生删除。
// swagger:model SubjectTrack
type SubjectTrack struct {
	BaseModel
	StudentID uint    `gorm:"index:idx_student_subject,unique;not null" json:"studentId"`
	Subject   Subject `gorm:"index:idx_student_subject,unique;type:varchar(32);not null" json:"subject"`

	ClassLevel string `gorm:"size:32;not null" json:"classLevel"`

	// 本班级内已完成的课程，升班时清空（新课程表从零开始）
	CompletedLessonIDs UintSet `gorm:"type:json" json:"completedLessonIds"`
	CompletedTopicIDs  UintSet `gorm:"type:json" json:"completedTopicIds"`
	CompletedModuleIDs UintSet `gorm:"type:json" json:"completedModuleIds"`

	// 摘要校验通过的课程，课程的主题测验以此解锁
	VerifiedSummaries UintSet `gorm:"type:json" json:"verifiedSummaries"`

	// lessonID → 该课主题测验的连续失败次数，及格或管理员重置时清零
	FailAttempts FailCountMap `gorm:"type:json" json:"failAttempts"`

	LastScore  int         `gorm:"default:0" json:"lastScore"`
	LastResult TrackResult `gorm:"size:16" json:"lastResult"`

	ActiveIntervention  InterventionKind `gorm:"size:32;default:'NONE'" json:"activeIntervention"`
	InterventionSubject string           `gorm:"size:32" json:"interventionSubject"`

	ExamStatus ExamStatus `gorm:"size:16;default:'not_eligible'" json:"examStatus"`
	ExamResult ExamResult `gorm:"size:8;default:'none'" json:"examResult"`
}

func (SubjectTrack) TableName() string {
	return "subject_tracks"
}

func (t *SubjectTrack) FailStreak(lessonID uint) int {
	if t.FailAttempts == nil {
		return 0
	}
	return t.FailAttempts[lessonID]
}

// RecordFail 记一次失败，返回新的连败次数。
func (t *SubjectTrack) RecordFail(lessonID uint) int {
	if t.FailAttempts == nil {
		t.FailAttempts = FailCountMap{}
	}
	t.FailAttempts[lessonID]++
	return t.FailAttempts[lessonID]
}

func (t *SubjectTrack) ResetFail(lessonID uint) {
	if t.FailAttempts != nil {
		delete(t.FailAttempts, lessonID)
	}
}

func (t *SubjectTrack) ResetAllFails() {
	t.FailAttempts = FailCountMap{}
}

// SimplifyForced 管理员的简化干预是否覆盖到本学科。
func (t *SubjectTrack) SimplifyForced() bool {
	if t.ActiveIntervention != InterventionSimplify {
		return false
	}
	return t.InterventionSubject == ScopeAll || t.InterventionSubject == string(t.Subject)
}

// ScopeCovers 干预作用域是否覆盖本轨道。
func ScopeCovers(scope string, subject Subject) bool {
	return scope == ScopeAll || scope == string(subject)
}
