package controller

import (
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GuardianController 监护人侧：为孩子建档、看进度、处理预警。
type GuardianController struct {
	StudentService      *service.StudentService
	InterventionService *service.InterventionService
}

func NewGuardianController(studentService *service.StudentService, interventionService *service.InterventionService) *GuardianController {
	return &GuardianController{
		StudentService:      studentService,
		InterventionService: interventionService,
	}
}

// CreateStudent godoc
// @Summary 为孩子建档
// @Description 创建学生账号与档案，每学科一条从最低班级起步的轨道
// @Tags 监护人
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateStudentInput true "学生信息"
// @Success 201 {object} util.Response{data=model.Student}
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/guardian/students [post]
func (c *GuardianController) CreateStudent(ctx *gin.Context) {
	var req service.CreateStudentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.CreateStudent(claims.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// ListProgress godoc
// @Summary 名下学生的进度快照
// @Description 全部学科轨道加历史预警
// @Tags 监护人
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.ProgressView}
// @Router /api/guardian/students [get]
func (c *GuardianController) ListProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	views, err := c.StudentService.GuardianProgress(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// ListAlerts godoc
// @Summary 名下学生的预警
// @Tags 监护人
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Alert}
// @Router /api/guardian/alerts [get]
func (c *GuardianController) ListAlerts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	alerts, err := c.InterventionService.GuardianAlerts(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, alerts)
}

// EscalateRequest 升级预警时的说明
// swagger:model EscalateRequest
type EscalateRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// EscalateAlert godoc
// @Summary 把预警升级给管理员
// @Description 仅能升级自己学生的pending_guardian预警，附说明
// @Tags 监护人
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预警ID"
// @Param body body EscalateRequest true "说明"
// @Success 200 {object} util.Response{data=model.Alert}
// @Failure 409 {object} util.Response "预警不在待监护人状态"
// @Router /api/guardian/alerts/{id}/escalate [post]
func (c *GuardianController) EscalateAlert(ctx *gin.Context) {
	var req EscalateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	alert, err := c.InterventionService.EscalateAlert(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Comment)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, alert)
}
