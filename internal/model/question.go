package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type TestKind string

const (
	TestPlacement TestKind = "placement"
	TestTopic     TestKind = "topic"
	TestModule    TestKind = "module"
	TestFinal     TestKind = "final"
)

// StringSlice 以JSON数组落库的选项列表。
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("unsupported column type for StringSlice")
		}
		b = []byte(str)
	}
	if len(b) == 0 {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// swagger:model Question
type Question struct {
	BaseModel
	Subject    Subject  `gorm:"index:idx_bank;type:varchar(32);not null" json:"subject"`
	ClassLevel string   `gorm:"index:idx_bank;size:32;not null" json:"classLevel"`
	Kind       TestKind `gorm:"index:idx_bank;type:varchar(16);not null" json:"kind"`

	// 主题测验挂在具体课程下；安置/期末题不挂课程
	LessonID *uint  `gorm:"index" json:"lessonId,omitempty"`
	Topic    string `gorm:"size:100" json:"topic"`

	Text          string      `gorm:"type:text;not null" json:"text"`
	Options       StringSlice `gorm:"type:json" json:"options"`
	CorrectOption int         `gorm:"not null" json:"-"`

	Order int `gorm:"column:sort_order;default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// Test 按需从题库装配的一份卷子，不落库。
type Test struct {
	Kind       TestKind   `json:"kind"`
	Subject    Subject    `json:"subject"`
	ClassLevel string     `json:"classLevel"`
	Simplified bool       `json:"simplified"`
	Questions  []Question `json:"questions"`
}
