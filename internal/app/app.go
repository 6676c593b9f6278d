package app

import (
	"context"
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/controller"
	"inclusive_edu_backend/internal/repository"
	"inclusive_edu_backend/internal/service"
	"inclusive_edu_backend/pkg/database"
	"inclusive_edu_backend/pkg/logger"
	"inclusive_edu_backend/pkg/monitoring"
	"inclusive_edu_backend/pkg/security"
	"inclusive_edu_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	student  *repository.StudentRepository
	lesson   *repository.LessonRepository
	question *repository.QuestionRepository
	alert    *repository.AlertRepository
}

type services struct {
	auth         *service.AuthService
	storage      *service.StorageService
	student      *service.StudentService
	content      *service.ContentService
	placement    *service.PlacementService
	progression  *service.ProgressionService
	intervention *service.InterventionService
	lesson       *service.LessonService
}

type controllers struct {
	auth      *controller.AuthController
	placement *controller.PlacementController
	content   *controller.ContentController
	test      *controller.TestController
	exam      *controller.ExamController
	guardian  *controller.GuardianController
	admin     *controller.AdminController
	lesson    *controller.LessonController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		student:  repository.NewStudentRepository(db),
		lesson:   repository.NewLessonRepository(db),
		question: repository.NewQuestionRepository(db),
		alert:    repository.NewAlertRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	progression := &cfg.Progression
	promo := service.NewPromotionEngine(progression)

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.student = service.NewStudentService(repos.user, repos.student, repos.alert, progression)
	s.content = service.NewContentService(repos.lesson, repos.question, rdb, progression)
	s.placement = service.NewPlacementService(repos.student, repos.question, s.content, progression)
	s.progression = service.NewProgressionService(repos.student, repos.lesson, repos.question, repos.alert, s.content, promo, progression)
	s.intervention = service.NewInterventionService(repos.student, repos.alert, s.content)
	s.lesson = service.NewLessonService(repos.lesson, repos.question, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		placement: controller.NewPlacementController(s.placement, s.student),
		content:   controller.NewContentController(s.content, s.student),
		test:      controller.NewTestController(s.progression, s.student),
		exam:      controller.NewExamController(s.progression, s.content, s.student),
		guardian:  controller.NewGuardianController(s.student, s.intervention),
		admin:     controller.NewAdminController(s.student, s.intervention),
		lesson:    controller.NewLessonController(s.lesson),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ApplyConfig 配置热更新回调：推进参数就地替换，
// 各服务共享同一份 ProgressionConfig，改一次全体生效。
func (a *App) ApplyConfig(newCfg *config.Config) {
	a.Config.Progression = newCfg.Progression
	logger.Log.Info("配置已热更新",
		zap.Int("topicPassThreshold", newCfg.Progression.TopicPassThreshold),
		zap.Int("finalPassThreshold", newCfg.Progression.FinalPassThreshold),
		zap.Strings("classLevels", newCfg.Progression.ClassLevels))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("inclusive-learning", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
