package controller

import (
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 管理员侧：预警队列、干预下发、概览。
type AdminController struct {
	StudentService      *service.StudentService
	InterventionService *service.InterventionService
}

func NewAdminController(studentService *service.StudentService, interventionService *service.InterventionService) *AdminController {
	return &AdminController{
		StudentService:      studentService,
		InterventionService: interventionService,
	}
}

// Overview godoc
// @Summary 管理端概览
// @Description 各学科班级人数分布与待处理预警数
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Overview}
// @Router /api/admin/overview [get]
func (c *AdminController) Overview(ctx *gin.Context) {
	overview, err := c.StudentService.AdminOverview()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// PendingAlerts godoc
// @Summary 等待管理员处置的预警
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Alert}
// @Router /api/admin/alerts [get]
func (c *AdminController) PendingAlerts(ctx *gin.Context) {
	alerts, err := c.InterventionService.PendingAdminAlerts()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, alerts)
}

// InterventionRequest 干预指令
// swagger:model InterventionRequest
type InterventionRequest struct {
	Kind  string `json:"kind" binding:"required,oneof=RESET_ATTEMPTS SIMPLIFY_CONTENT"`
	Scope string `json:"scope" binding:"required"`
}

// ApplyIntervention godoc
// @Summary 对学生下发干预
// @Description RESET_ATTEMPTS清连败计数，SIMPLIFY_CONTENT强制简化卷；作用域为学科名或all；幂等
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param body body InterventionRequest true "干预指令"
// @Success 200 {object} util.Response{data=model.Student}
// @Failure 400 {object} util.Response "未知干预或作用域"
// @Router /api/admin/students/{studentId}/interventions [post]
func (c *AdminController) ApplyIntervention(ctx *gin.Context) {
	var req InterventionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	student, err := c.InterventionService.ApplyIntervention(
		ctx.Request.Context(),
		claims.UserID,
		util.MustParseUint(ctx.Param("studentId")),
		model.InterventionKind(req.Kind),
		req.Scope,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// ClearInterventionRequest 撤销干预的作用域
// swagger:model ClearInterventionRequest
type ClearInterventionRequest struct {
	Scope string `json:"scope" binding:"required"`
}

// ClearIntervention godoc
// @Summary 撤销简化干预
// @Tags 管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Param body body ClearInterventionRequest true "作用域"
// @Success 200 {object} util.Response{data=model.Student}
// @Router /api/admin/students/{studentId}/interventions/clear [post]
func (c *AdminController) ClearIntervention(ctx *gin.Context) {
	var req ClearInterventionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.InterventionService.ClearIntervention(
		ctx.Request.Context(),
		util.MustParseUint(ctx.Param("studentId")),
		req.Scope,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// GetStudent godoc
// @Summary 学生档案与全部轨道
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response{data=model.Student}
// @Router /api/admin/students/{studentId} [get]
func (c *AdminController) GetStudent(ctx *gin.Context) {
	student, err := c.StudentService.GetByID(util.MustParseUint(ctx.Param("studentId")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, student)
}
