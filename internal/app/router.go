package app

import (
	"course_admin_backend/docs"
	"course_admin_backend/internal/config"
	"course_admin_backend/internal/controller"
	"course_admin_backend/internal/middleware"
	"course_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	controller.RegisterValidators()

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AuthorMiddleware())
	{
		registerCourseRoutes(admin, c)
		registerDraftRoutes(admin.Group("/drafts"), c.draft)
	}
}

func registerCourseRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/categories", c.course.Categories)
	rg.GET("/courses", c.course.List)
	rg.GET("/courses/:id", c.course.Get)

	// 删除仅限管理员
	rg.DELETE("/courses/:id", middleware.RoleMiddleware(), c.course.Delete)
}

func registerDraftRoutes(drafts *gin.RouterGroup, c *controller.DraftController) {
	drafts.POST("", c.Open)
	drafts.GET("/:id", c.Get)
	drafts.DELETE("/:id", c.Discard)
	drafts.PATCH("/:id/metadata", c.UpdateMetadata)
	drafts.PUT("/:id/key-topics", c.SetKeyTopics)
	drafts.POST("/:id/key-topics", c.AddKeyTopic)
	drafts.DELETE("/:id/key-topics/:index", c.RemoveKeyTopic)
	drafts.POST("/:id/images/:slot", c.StageImage)
	drafts.GET("/:id/validation", c.Validate)
	drafts.POST("/:id/submit", c.Submit)

	// 描述段落
	blocks := drafts.Group("/:id/description/blocks")
	{
		blocks.POST("", c.AddDescriptionBlock)
		blocks.DELETE("/:index", c.RemoveDescriptionBlock)
		blocks.PUT("/:index/headline", c.SetBlockHeadline)
		blocks.POST("/:index/text", c.AddBlockText)
		blocks.PUT("/:index/text", c.SetBlockText)
		blocks.POST("/:index/points", c.AddBlockPoints)
		blocks.PUT("/:index/points", c.SetBlockPoints)
	}

	drafts.POST("/:id/learning-points", c.AddLearningPoint)
	drafts.PUT("/:id/learning-points/:index", c.SetLearningPoint)
	drafts.DELETE("/:id/learning-points/:index", c.RemoveLearningPoint)

	// 模块与课时
	modules := drafts.Group("/:id/modules")
	{
		modules.POST("", c.AddModule)
		modules.DELETE("/:key", c.RemoveModule)
		modules.PUT("/:key/title", c.SetModuleTitle)
		modules.POST("/:key/toggle", c.ToggleModule)
		modules.POST("/:key/lessons", c.AddLesson)
		modules.DELETE("/:key/lessons/:index", c.RemoveLesson)
		modules.PUT("/:key/lessons/:index/:field", c.SetLessonField)
	}

	// 测验编辑器
	editor := drafts.Group("/:id/editor")
	{
		editor.POST("", c.OpenEditor)
		editor.DELETE("", c.CloseEditor)
		editor.POST("/next", c.NextQuestion)
		editor.POST("/previous", c.PreviousQuestion)
		editor.POST("/save", c.SaveEditor)
		editor.PUT("/questions/:step/prompt", c.SetQuestionPrompt)
		editor.PUT("/questions/:step/options/:option", c.SetQuestionOption)
		editor.PUT("/questions/:step/answer", c.SetCorrectAnswer)
	}
}
