package controller

import (
	"errors"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// subjectParam 路径里的学科名，认不出来按参数错误拒绝。
func subjectParam(ctx *gin.Context) (model.Subject, bool) {
	switch s := model.Subject(ctx.Param("subject")); s {
	case model.SubjectMaths, model.SubjectScience:
		return s, true
	default:
		util.BadRequest(ctx, util.ErrUnknownSubject.Error())
		return "", false
	}
}

// respondError 引擎错误到HTTP状态码的统一映射。
// 未知错误一律按500处理并记日志，不向外泄露细节。
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrStudentNotFound),
		errors.Is(err, util.ErrTrackNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrAlertNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrQuestionSetEmpty):
		util.Error(ctx, http.StatusNotFound, err.Error())

	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)

	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrPlacementDone),
		errors.Is(err, util.ErrStaleState),
		errors.Is(err, util.ErrSummaryNotActive),
		errors.Is(err, util.ErrExamNotEligible),
		errors.Is(err, util.ErrExamNotSubmitted):
		util.Conflict(ctx, err.Error())

	case errors.Is(err, util.ErrInvalidTest),
		errors.Is(err, util.ErrAnswerCount),
		errors.Is(err, util.ErrNoAccessibleNext),
		errors.Is(err, util.ErrUnknownSubject),
		errors.Is(err, util.ErrUnknownScope),
		errors.Is(err, util.ErrUnknownKind),
		errors.Is(err, util.ErrUnknownTestKind),
		errors.Is(err, util.ErrUnknownClassLevel):
		util.BadRequest(ctx, err.Error())

	default:
		util.LogInternalError(ctx, err)
	}
}
