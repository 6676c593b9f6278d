package app

import (
	"inclusive_edu_backend/docs"
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/middleware"
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
	router.GET("/health", c.health.HealthCheck)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		// 学生侧：安置、面板、摘要、测验
		student := authGroup.Group("/student")
		student.Use(middleware.RoleMiddleware(model.RoleStudent))
		{
			student.GET("/placement/:subject", c.placement.GetPlacementTest)
			student.POST("/placement", c.placement.SubmitPlacement)

			student.GET("/subjects/:subject/board", c.content.GetBoard)
			student.GET("/subjects/:subject/test", c.content.GetCurrentTest)
			student.POST("/subjects/:subject/test", c.test.SubmitTest)
		}

		// 监护人侧：建档、进度、预警、期末交卷
		guardian := authGroup.Group("/guardian")
		guardian.Use(middleware.RoleMiddleware(model.RoleGuardian))
		{
			guardian.POST("/students", c.guardian.CreateStudent)
			guardian.GET("/students", c.guardian.ListProgress)
			guardian.GET("/alerts", c.guardian.ListAlerts)
			guardian.POST("/alerts/:id/escalate", c.guardian.EscalateAlert)

			guardian.GET("/students/:studentId/subjects/:subject/exam", c.exam.GetExamPaper)
			guardian.POST("/students/:studentId/subjects/:subject/exam", c.exam.SubmitExam)
		}

		// 管理员侧：概览、预警处置、干预、批卷、目录维护
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		{
			admin.GET("/overview", c.admin.Overview)
			admin.GET("/alerts", c.admin.PendingAlerts)
			admin.GET("/students/:studentId", c.admin.GetStudent)
			admin.POST("/students/:studentId/interventions", c.admin.ApplyIntervention)
			admin.POST("/students/:studentId/interventions/clear", c.admin.ClearIntervention)
			admin.POST("/students/:studentId/subjects/:subject/summary/verify", c.test.VerifySummary)
			admin.POST("/students/:studentId/subjects/:subject/exam/grade", c.exam.GradeExam)

			admin.POST("/lessons", c.lesson.CreateLesson)
			admin.GET("/lessons", c.lesson.ListLessons)
			admin.PUT("/lessons/:id", c.lesson.UpdateLesson)
			admin.POST("/questions", c.lesson.AddQuestion)
			admin.DELETE("/questions/:id", c.lesson.DeleteQuestion)
		}
	}
}
