package app

import (
	"inclusive_edu_backend/internal/config"
	"inclusive_edu_backend/internal/controller"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func registeredPaths(t *testing.T) []string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	a := &App{}
	a.registerRoutes(router, &controllers{
		auth:      &controller.AuthController{},
		placement: &controller.PlacementController{},
		content:   &controller.ContentController{},
		test:      &controller.TestController{},
		exam:      &controller.ExamController{},
		guardian:  &controller.GuardianController{},
		admin:     &controller.AdminController{},
		lesson:    &controller.LessonController{},
		health:    &controller.HealthController{},
	}, &repositories{}, &config.Config{})

	var paths []string
	for _, r := range router.Routes() {
		paths = append(paths, r.Method+" "+r.Path)
	}
	return paths
}

// 摘要校验信号由外部批改回写，只挂在管理员侧，学生侧不得自证
func TestSummaryVerifyIsAdminOnly(t *testing.T) {
	paths := registeredPaths(t)
	assert.Contains(t, paths, "POST /api/admin/students/:studentId/subjects/:subject/summary/verify")
	assert.NotContains(t, paths, "POST /api/student/subjects/:subject/summary/verify")
}

func TestStudentRoutesRegistered(t *testing.T) {
	paths := registeredPaths(t)
	assert.Contains(t, paths, "GET /api/student/placement/:subject")
	assert.Contains(t, paths, "POST /api/student/placement")
	assert.Contains(t, paths, "GET /api/student/subjects/:subject/board")
	assert.Contains(t, paths, "GET /api/student/subjects/:subject/test")
	assert.Contains(t, paths, "POST /api/student/subjects/:subject/test")
}
