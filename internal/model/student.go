package model

import "strings"

// AccessibilityProfile 学生的无障碍画像。录入时解析一次，
// 引擎内部只比较枚举值，不再按字符串临时判断。
type AccessibilityProfile string

const (
	ProfileGeneral AccessibilityProfile = "general"
	ProfileBlind   AccessibilityProfile = "blind"
	ProfileDeaf    AccessibilityProfile = "deaf"
	ProfileADHD    AccessibilityProfile = "adhd"
)

// ParseAccessibility 把历史数据里的各种写法（"Visually Impaired"、
// "BLIND"、"hearing impaired" 等）归一到封闭枚举，认不出来按 general 处理。
func ParseAccessibility(raw string) AccessibilityProfile {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "blind", "visually impaired", "visual":
		return ProfileBlind
	case "deaf", "hearing impaired", "hearing":
		return ProfileDeaf
	case "adhd", "attention deficit":
		return ProfileADHD
	default:
		return ProfileGeneral
	}
}

// swagger:model Student
type Student struct {
	BaseModel
	UserID        uint                 `gorm:"uniqueIndex;not null" json:"userId"`
	GuardianID    uint                 `gorm:"index" json:"guardianId"`
	Name          string               `gorm:"size:100;not null" json:"name"`
	Accessibility AccessibilityProfile `gorm:"type:enum('general','blind','deaf','adhd');default:'general'" json:"accessibility"`
	PlacementDone bool                 `gorm:"default:false" json:"placementDone"`

	Tracks []SubjectTrack `gorm:"foreignKey:StudentID" json:"tracks"`
}

func (Student) TableName() string {
	return "students"
}

// Track 返回指定学科的学业轨道，学生创建时每科各建一条，正常不会缺。
func (s *Student) Track(subject Subject) *SubjectTrack {
	for i := range s.Tracks {
		if s.Tracks[i].Subject == subject {
			return &s.Tracks[i]
		}
	}
	return nil
}
