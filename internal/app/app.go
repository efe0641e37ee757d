package app

import (
	"context"
	"fusion_backend/internal/config"
	"fusion_backend/internal/controller"
	"fusion_backend/internal/middleware"
	"fusion_backend/internal/repository"
	"fusion_backend/internal/service"
	"fusion_backend/pkg/configwatcher"
	"fusion_backend/pkg/database"
	"fusion_backend/pkg/logger"
	"fusion_backend/pkg/monitoring"
	"fusion_backend/pkg/security"
	"fusion_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	secrets         *middleware.TriggerSecrets
	tracer          *sdktrace.TracerProvider
	stopWatch       context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	puzzle  *repository.PuzzleRepository
	history *repository.HistoryRepository
	stats   *repository.StatsRepository
}

type services struct {
	storage    *service.StorageService
	roster     *service.RosterService
	refine     *service.RefineService
	image      *service.ImageService
	publish    *service.PublishService
	generation *service.GenerationService
	stats      *service.StatsService
	guess      *service.GuessService
	history    *service.HistoryService
}

type controllers struct {
	generation *controller.GenerationController
	puzzle     *controller.PuzzleController
	stats      *controller.StatsController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		puzzle:  repository.NewPuzzleRepository(rdb),
		history: repository.NewHistoryRepository(db),
		stats:   repository.NewStatsRepository(rdb, cfg.Stats.TTL),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.roster = service.NewRosterService(cfg.DataDragon)
	s.image = service.NewImageService(cfg.ImageGen)

	refine, err := service.NewGeminiRefineService(context.Background(), cfg.Gemini)
	if err != nil {
		// 客户端创建失败时不做精炼
		logger.Log.Error("Failed to create Gemini client, refinement disabled", zap.Error(err))
		refine = service.NewRefineService(nil, cfg.Gemini.Model)
	}
	s.refine = refine

	s.publish = service.NewPublishService(s.storage, repos.puzzle, repos.history)
	s.generation = service.NewGenerationService(s.roster, s.refine, s.image, s.publish)

	s.stats = service.NewStatsService(repos.stats, repos.puzzle)
	s.guess = service.NewGuessService(repos.puzzle, s.stats)
	s.history = service.NewHistoryService(repos.history, repos.puzzle, s.stats)

	return s
}

func (a *App) initControllers(repos *repositories, s *services) *controllers {
	return &controllers{
		generation: controller.NewGenerationController(s.generation),
		puzzle:     controller.NewPuzzleController(repos.puzzle, s.guess),
		stats:      controller.NewStatsController(s.stats, s.history),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startConfigWatcher 配置文件变更时热更新触发密钥
func (a *App) startConfigWatcher(cfg *config.Config) {
	if !cfg.Server.WatchConfig || cfg.ConfigFile == "" {
		return
	}

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		a.secrets.Update(newCfg.Trigger)
		logger.Log.Info("Trigger secrets reloaded")
	})

	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	go func() {
		err := configwatcher.WatchConfig(ctx, cfg.ConfigFile, func(newCfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		secrets: middleware.NewTriggerSecrets(cfg.Trigger),
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(repos, services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("fusion-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startConfigWatcher(cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
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

	if a.stopWatch != nil {
		a.stopWatch()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if err := a.Redis.Close(); err != nil {
		logger.Log.Error("Failed to close redis", zap.Error(err))
	}

	log.Println("Server exiting")
}
