package app

import (
	"course_admin_backend/internal/config"
	"course_admin_backend/internal/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef"}}
	c := &controllers{
		draft:  &controller.DraftController{},
		course: &controller.CourseController{},
		health: &controller.HealthController{},
	}

	a := &App{Config: cfg}
	a.registerRoutes(router, c, cfg)

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/admin/drafts",
		"PATCH /api/admin/drafts/:id/metadata",
		"PUT /api/admin/drafts/:id/description/blocks/:index/points",
		"PUT /api/admin/drafts/:id/modules/:key/lessons/:index/:field",
		"PUT /api/admin/drafts/:id/editor/questions/:step/options/:option",
		"POST /api/admin/drafts/:id/submit",
		"DELETE /api/admin/courses/:id",
		"GET /api/health",
		"GET /metrics",
	} {
		assert.True(t, registered[want], want)
	}

	// 未携带 token 的管理接口
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/courses", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
