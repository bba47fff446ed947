package app

import (
	"context"
	"course_admin_backend/internal/config"
	"course_admin_backend/internal/controller"
	"course_admin_backend/internal/repository"
	"course_admin_backend/internal/service"
	"course_admin_backend/internal/util"
	"course_admin_backend/pkg/configwatcher"
	"course_admin_backend/pkg/database"
	"course_admin_backend/pkg/logger"
	"course_admin_backend/pkg/monitoring"
	"course_admin_backend/pkg/security"
	"course_admin_backend/pkg/tracing"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
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

	ConfigFile string

	services        *services
	limiter         *security.RateLimiter
	tracer          interface{ Shutdown(context.Context) error }
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	course   *repository.CourseRepository
	category *repository.CategoryRepository
	drafts   service.DraftStore
}

type services struct {
	storage *service.StorageService
	stager  *service.AssetStager
	drafts  *service.DraftService
	course  *service.CourseService
}

type controllers struct {
	draft  *controller.DraftController
	course *controller.CourseController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

// newDraftStore 按配置选择会话存储；memory 模式下不连接 Redis
func newDraftStore(cfg *config.Config, rdb *redis.Client) service.DraftStore {
	if cfg.Drafts.Store == config.DraftStoreMemory || rdb == nil {
		return repository.NewMemoryDraftRepository()
	}
	return repository.NewRedisDraftRepository(rdb)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		course:   repository.NewCourseRepository(db),
		category: repository.NewCategoryRepository(db),
		drafts:   newDraftStore(a.Config, rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.stager = service.NewAssetStager(cfg.Storage.StagingPath, cfg.Storage.MaxImageMB)
	s.drafts = service.NewDraftService(
		repos.drafts,
		repos.course,
		s.storage,
		repos.category,
		s.stager,
		service.DraftOptions{
			TTL:     cfg.Drafts.TTL,
			LockTTL: cfg.SubmitLockTTL(),
		},
	)
	s.course = service.NewCourseService(repos.course, repos.category)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		draft:  controller.NewDraftController(s.drafts),
		course: controller.NewCourseController(s.course),
		health: controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloadable 可热更新的配置项：日志级别、会话过期时间、限流额度
func (a *App) registerReloadable() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetMode(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.drafts.SetTTL(cfg.Drafts.TTL)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.limiter.Update(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.Log.Info("runtime config updated",
			zap.String("mode", cfg.Server.Mode),
			zap.Duration("draftTTL", cfg.Drafts.TTL),
			zap.Int("rateLimit", cfg.RateLimit.MaxRequests),
		)
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config:     cfg,
		DB:         db,
		ConfigFile: filepath.Join("configs", "config.yaml"),
	}

	if cfg.MigrateOnly {
		return app
	}

	if cfg.Drafts.Store == config.DraftStoreRedis {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	} else {
		logger.Log.Warn("drafts are kept in memory and will not survive a restart")
	}

	repos := app.initRepositories(db, app.Redis)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)
	app.registerReloadable()

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.limiter.Run(ctx.Done())
	go func() {
		if err := configwatcher.Watch(ctx, a.ConfigFile, config.LoadConfig, a.applyConfig); err != nil {
			logger.Log.Error("config watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	// 等待进行中的请求（设置5秒的超时时间）
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}
