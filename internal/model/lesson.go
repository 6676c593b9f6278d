package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	Subject    Subject `gorm:"index:idx_subject_level;type:varchar(32);not null" json:"subject"`
	ClassLevel string  `gorm:"index:idx_subject_level;size:32;not null" json:"classLevel"`
	Title      string  `gorm:"size:200;not null" json:"title"`
	Topic      string  `gorm:"size:100" json:"topic"`

	// 目录顺序即解锁顺序
	Order int `gorm:"column:sort_order;default:0" json:"order"`

	HasAudio bool   `gorm:"default:false" json:"hasAudio"`
	HasVideo bool   `gorm:"default:false" json:"hasVideo"`
	AudioURL string `gorm:"size:500" json:"audioUrl"`
	VideoURL string `gorm:"size:500" json:"videoUrl"`

	DurationSec int `gorm:"default:0" json:"durationSec"`

	// 个性化课程只对目标学生可见，其他人一律过滤
	TargetStudentID *uint `gorm:"index" json:"targetStudentId,omitempty"`

	// 简化变体标记（由失败或干预触发的降级内容）
	Simplified bool `gorm:"default:false" json:"simplified"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// VisibleTo 个性化课程只归属其目标学生。
func (l *Lesson) VisibleTo(studentID uint) bool {
	return l.TargetStudentID == nil || *l.TargetStudentID == studentID
}

// PresentationMode 课程内容的呈现方式。
type PresentationMode string

const (
	ModeAudio      PresentationMode = "audio"
	ModeVideo      PresentationMode = "video"
	ModeVideoMuted PresentationMode = "video_muted"
)

// LessonState 推进状态机里单课的状态。
type LessonState string

const (
	StateLocked          LessonState = "LOCKED"
	StateActive          LessonState = "ACTIVE"
	StateSummaryVerified LessonState = "SUMMARY_VERIFIED"
	StateTestReady       LessonState = "TEST_READY"
	StateCompleted       LessonState = "COMPLETED"
)

// TrackPhase 学科整体所处阶段。
type TrackPhase string

const (
	PhaseLearning          TrackPhase = "LEARNING"
	PhaseAwaitingFinalExam TrackPhase = "AWAITING_FINAL_EXAM"
)
