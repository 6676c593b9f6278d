package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrStudentNotFound   = errors.New("student not found")
	ErrTrackNotFound     = errors.New("subject track not found")
	ErrLessonNotFound    = errors.New("lesson not found")
	ErrQuestionSetEmpty  = errors.New("no question set for subject/level/kind")
	ErrInvalidTest       = errors.New("test has no questions")
	ErrInvalidPromotion  = errors.New("class level may only change through the final exam path")
	ErrStaleState        = errors.New("lesson is not awaiting a test submission")
	ErrPlacementDone     = errors.New("placement already completed for this student")
	ErrNoAccessibleNext  = errors.New("no accessible lesson available for this student")
	ErrSummaryNotActive  = errors.New("summary can only be verified for the active lesson")
	ErrExamNotEligible   = errors.New("final exam is not unlocked for this subject")
	ErrExamNotSubmitted  = errors.New("final exam has not been submitted")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrUnknownSubject    = errors.New("unknown subject")
	ErrUnknownScope      = errors.New("intervention scope must be a subject or \"all\"")
	ErrUnknownKind       = errors.New("unknown intervention kind")
	ErrUnknownTestKind   = errors.New("unknown test kind")
	ErrAnswerCount       = errors.New("answer sheet length does not match question count")
	ErrUnknownClassLevel = errors.New("class level is not in the configured ladder")
)
