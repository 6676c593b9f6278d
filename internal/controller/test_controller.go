package controller

import (
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TestController 摘要校验与主题测验判分。
type TestController struct {
	ProgressionService *service.ProgressionService
	StudentService     *service.StudentService
}

func NewTestController(progressionService *service.ProgressionService, studentService *service.StudentService) *TestController {
	return &TestController{
		ProgressionService: progressionService,
		StudentService:     studentService,
	}
}

// VerifySummaryRequest 摘要校验信号
// swagger:model VerifySummaryRequest
type VerifySummaryRequest struct {
	LessonID uint `json:"lessonId" binding:"required"`
}

// VerifySummary godoc
// @Summary 课程摘要校验通过
// @Description 外部批改产生的布尔信号，由管理员侧回写；只接受当前解锁中的课程
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param subject path string true "学科" Enums(maths, science)
// @Param body body VerifySummaryRequest true "课程"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "课程不在解锁状态"
// @Router /api/admin/students/{studentId}/subjects/{subject}/summary/verify [post]
func (c *TestController) VerifySummary(ctx *gin.Context) {
	subject, ok := subjectParam(ctx)
	if !ok {
		return
	}

	student, err := c.StudentService.GetByID(util.MustParseUint(ctx.Param("studentId")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req VerifySummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressionService.VerifySummary(ctx.Request.Context(), student.ID, subject, req.LessonID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"lessonId": req.LessonID, "verified": true})
}

// AnswerSheet 按题目顺序对齐的答卷，null表示未作答
// swagger:model AnswerSheet
type AnswerSheet struct {
	Answers []*int `json:"answers" binding:"required"`
}

// SubmitTest godoc
// @Summary 提交主题测验答卷
// @Description 对当前TEST_READY课程判分；重复提交按409拒绝且不重判
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subject path string true "学科" Enums(maths, science)
// @Param body body AnswerSheet true "答卷"
// @Success 200 {object} util.Response{data=service.GradeOutcome}
// @Failure 409 {object} util.Response "课程不在待测状态"
// @Router /api/student/subjects/{subject}/test [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	subject, ok := subjectParam(ctx)
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.StudentForUser(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req AnswerSheet
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.ProgressionService.SubmitTopicTest(ctx.Request.Context(), student.ID, subject, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}
