package controller

import (
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlacementController struct {
	PlacementService *service.PlacementService
	StudentService   *service.StudentService
}

func NewPlacementController(placementService *service.PlacementService, studentService *service.StudentService) *PlacementController {
	return &PlacementController{
		PlacementService: placementService,
		StudentService:   studentService,
	}
}

// GetPlacementTest godoc
// @Summary 获取某学科的入学诊断卷
// @Description 题目按班级从低到高排列，正确项不随卷下发
// @Tags 安置
// @Produce json
// @Security BearerAuth
// @Param subject path string true "学科" Enums(maths, science)
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response "学科无题库"
// @Router /api/student/placement/{subject} [get]
func (c *PlacementController) GetPlacementTest(ctx *gin.Context) {
	subject, ok := subjectParam(ctx)
	if !ok {
		return
	}

	test, err := c.PlacementService.PlacementTest(subject)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// PlacementSubmission 全学科的诊断答卷，learner一次交齐
// swagger:model PlacementSubmission
type PlacementSubmission struct {
	Answers map[string][]*int `json:"answers" binding:"required"`
}

// SubmitPlacement godoc
// @Summary 提交入学诊断答卷
// @Description 一次提交全部学科；答错即触顶定班，诊断只做一次
// @Tags 安置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PlacementSubmission true "各学科答卷"
// @Success 200 {object} util.Response{data=object} "各学科落点班级"
// @Failure 409 {object} util.Response "诊断已完成"
// @Router /api/student/placement [post]
func (c *PlacementController) SubmitPlacement(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.StudentForUser(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req PlacementSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answers := make(map[model.Subject][]*int, len(req.Answers))
	for name, sheet := range req.Answers {
		answers[model.Subject(name)] = sheet
	}

	placed, err := c.PlacementService.SubmitPlacement(ctx.Request.Context(), student.ID, answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"placement": placed})
}
