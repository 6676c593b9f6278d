package controller

import (
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ExamController 期末考试生命周期：监护人取卷交卷，管理员批卷。
type ExamController struct {
	ProgressionService *service.ProgressionService
	ContentService     *service.ContentService
	StudentService     *service.StudentService
}

func NewExamController(progressionService *service.ProgressionService, contentService *service.ContentService, studentService *service.StudentService) *ExamController {
	return &ExamController{
		ProgressionService: progressionService,
		ContentService:     contentService,
		StudentService:     studentService,
	}
}

// GetExamPaper godoc
// @Summary 获取学生的期末试卷
// @Description 仅在该学科全部课程完成后可取
// @Tags 期末
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param subject path string true "学科" Enums(maths, science)
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 409 {object} util.Response "期末未解锁"
// @Router /api/guardian/students/{studentId}/subjects/{subject}/exam [get]
func (c *ExamController) GetExamPaper(ctx *gin.Context) {
	subject, ok := subjectParam(ctx)
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.OwnedBy(util.MustParseUint(ctx.Param("studentId")), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	paper, err := c.ContentService.FinalExam(student, subject)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, paper)
}

// SubmitExam godoc
// @Summary 监护人代交期末答卷
// @Description 立即评分并转入submitted，升班结论由管理员批卷落定
// @Tags 期末
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param subject path string true "学科" Enums(maths, science)
// @Param body body AnswerSheet true "答卷"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "期末不在可交状态"
// @Router /api/guardian/students/{studentId}/subjects/{subject}/exam [post]
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	subject, ok := subjectParam(ctx)
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.OwnedBy(util.MustParseUint(ctx.Param("studentId")), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req AnswerSheet
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	score, err := c.ProgressionService.SubmitFinalExam(ctx.Request.Context(), student.ID, subject, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"score": score, "status": "submitted"})
}

// GradeExam godoc
// @Summary 管理员批期末卷
// @Description 已提交的分数送进升班引擎；及格升班并清空本班进度
// @Tags 期末
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param subject path string true "学科" Enums(maths, science)
// @Success 200 {object} util.Response{data=service.GradeOutcome}
// @Failure 409 {object} util.Response "试卷未提交"
// @Router /api/admin/students/{studentId}/subjects/{subject}/exam/grade [post]
func (c *ExamController) GradeExam(ctx *gin.Context) {
	subject, ok := subjectParam(ctx)
	if !ok {
		return
	}

	outcome, err := c.ProgressionService.GradeExam(ctx.Request.Context(), util.MustParseUint(ctx.Param("studentId")), subject)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}
