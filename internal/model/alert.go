package model

type AlertStatus string

const (
	AlertPendingGuardian AlertStatus = "pending_guardian"
	AlertPendingAdmin    AlertStatus = "pending_admin"
	AlertResolved        AlertStatus = "resolved"
)

// Alert 连续失败触发的升级预警。
// 同一 (student, subject, lesson) 同时最多存在一条未解决的预警。
// swagger:model Alert
type Alert struct {
	BaseModel
	StudentID uint        `gorm:"index;not null" json:"studentId"`
	Subject   Subject     `gorm:"type:varchar(32);not null" json:"subject"`
	LessonID  uint        `gorm:"index;not null" json:"lessonId"`
	Status    AlertStatus `gorm:"type:varchar(32);default:'pending_guardian'" json:"status"`
	Reason    string      `gorm:"size:255" json:"reason"`

	// 监护人升级时附带的说明
	GuardianComment string `gorm:"size:500" json:"guardianComment"`
	ResolvedBy      *uint  `json:"resolvedBy,omitempty"`
}

func (Alert) TableName() string {
	return "alerts"
}

func (a *Alert) Unresolved() bool {
	return a.Status != AlertResolved
}
