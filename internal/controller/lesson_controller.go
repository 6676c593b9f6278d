package controller

import (
	"fmt"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/internal/util"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LessonController 管理员侧的课程目录与题库维护。
type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// CreateLessonRequest 建课表单（multipart，媒资随表单上传）
type CreateLessonRequest struct {
	Subject         string `form:"subject" binding:"required,oneof=maths science"`
	ClassLevel      string `form:"classLevel" binding:"required"`
	Title           string `form:"title" binding:"required"`
	Topic           string `form:"topic"`
	Order           int    `form:"order"`
	TargetStudentID *uint  `form:"targetStudentId"`
}

// CreateLesson godoc
// @Summary 新建课程
// @Description 媒资经ffmpeg探测定HasAudio/HasVideo；有音轨的视频自动抽纯音频版
// @Tags 课程管理
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param subject formData string true "学科" Enums(maths, science)
// @Param classLevel formData string true "班级"
// @Param title formData string true "标题"
// @Param media formData file false "音频或视频文件"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Router /api/admin/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req CreateLessonRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson := &model.Lesson{
		Subject:         model.Subject(req.Subject),
		ClassLevel:      req.ClassLevel,
		Title:           req.Title,
		Topic:           req.Topic,
		Order:           req.Order,
		TargetStudentID: req.TargetStudentID,
	}

	file, err := ctx.FormFile("media")
	if err != nil {
		// 无媒资的纯文本课
		if err := c.LessonService.CreateLesson(lesson); err != nil {
			respondError(ctx, err)
			return
		}
		util.Created(ctx, lesson)
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename)))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	if err := c.LessonService.CreateLessonWithMedia(ctx.Request.Context(), lesson, tmpPath); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// ListLessons godoc
// @Summary 课程目录分页
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	lessons, total, err := c.LessonService.ListLessons(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"lessons": lessons, "total": total})
}

// UpdateLessonRequest 可改字段
type UpdateLessonRequest struct {
	Title string `json:"title"`
	Topic string `json:"topic"`
	Order *int   `json:"order"`
}

// UpdateLesson godoc
// @Summary 更新课程信息
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Param body body UpdateLessonRequest true "可改字段"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/admin/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	lesson, err := c.LessonService.GetLesson(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Title != "" {
		lesson.Title = req.Title
	}
	if req.Topic != "" {
		lesson.Topic = req.Topic
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}

	if err := c.LessonService.UpdateLesson(lesson); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// QuestionRequest 入库题目
// swagger:model QuestionRequest
type QuestionRequest struct {
	Subject       string   `json:"subject" binding:"required,oneof=maths science"`
	ClassLevel    string   `json:"classLevel" binding:"required"`
	Kind          string   `json:"kind" binding:"required,oneof=placement topic module final"`
	LessonID      *uint    `json:"lessonId"`
	Topic         string   `json:"topic"`
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption int      `json:"correctOption"`
	Order         int      `json:"order"`
}

// AddQuestion godoc
// @Summary 题目入库
// @Description 主题/模块题必须挂课程，安置/期末题不挂
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body QuestionRequest true "题目"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/admin/questions [post]
func (c *LessonController) AddQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.CorrectOption < 0 || req.CorrectOption >= len(req.Options) {
		util.BadRequest(ctx, "correctOption out of range")
		return
	}

	q := &model.Question{
		Subject:       model.Subject(req.Subject),
		ClassLevel:    req.ClassLevel,
		Kind:          model.TestKind(req.Kind),
		LessonID:      req.LessonID,
		Topic:         req.Topic,
		Text:          req.Text,
		Options:       model.StringSlice(req.Options),
		CorrectOption: req.CorrectOption,
		Order:         req.Order,
	}

	if err := c.LessonService.AddQuestion(q); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": q.ID})
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 课程管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *LessonController) DeleteQuestion(ctx *gin.Context) {
	if err := c.LessonService.DeleteQuestion(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
