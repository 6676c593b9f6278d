package controller

import (
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 学生端的课程面板与测验视图。
type ContentController struct {
	ContentService *service.ContentService
	StudentService *service.StudentService
}

func NewContentController(contentService *service.ContentService, studentService *service.StudentService) *ContentController {
	return &ContentController{
		ContentService: contentService,
		StudentService: studentService,
	}
}

// GetBoard godoc
// @Summary 学科课程面板
// @Description 按无障碍画像过滤的可见课程，含解锁状态与呈现方式
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param subject path string true "学科" Enums(maths, science)
// @Success 200 {object} util.Response{data=service.LessonBoard}
// @Failure 404 {object} util.Response
// @Router /api/student/subjects/{subject}/board [get]
func (c *ContentController) GetBoard(ctx *gin.Context) {
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

	board, err := c.ContentService.Board(ctx.Request.Context(), student, subject)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// GetCurrentTest godoc
// @Summary 当前解锁课程的主题测验卷
// @Description 摘要未校验时返回409；命中简化条件时下发简化卷
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param subject path string true "学科" Enums(maths, science)
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 409 {object} util.Response "测验未解锁"
// @Router /api/student/subjects/{subject}/test [get]
func (c *ContentController) GetCurrentTest(ctx *gin.Context) {
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

	test, lesson, err := c.ContentService.CurrentTest(student, subject)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"lessonId": lesson.ID,
		"test":     test,
	})
}
