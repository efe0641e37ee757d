package app

import (
	"fusion_backend/docs"
	"fusion_backend/internal/config"
	"fusion_backend/internal/middleware"
	"fusion_backend/pkg/monitoring"
	"fusion_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由
	a.registerPublicRoutes(router, c)

	// 2. 猜测接口，按 IP 限流
	a.registerGuessRoutes(router, c, cfg)

	// 3. 定时任务触发，需要共享密钥
	a.registerTriggerRoutes(router, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/puzzle", c.puzzle.GetPuzzle)
		public.GET("/themes", c.puzzle.GetThemes)
		public.GET("/solution", c.puzzle.GetSolution)
		public.GET("/stats", c.stats.GetCurrentStats)
		public.GET("/stats/:date", c.stats.GetStatsByDate)
		public.GET("/history", c.stats.GetHistory)
	}
}

func (a *App) registerGuessRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	maxRequests := cfg.RateLimit.MaxRequests
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute

	guess := router.Group("/api")
	guess.Use(security.RateLimiter(maxRequests, window))
	{
		guess.POST("/guess", c.puzzle.SubmitGuess)
		guess.POST("/guess/champion", c.puzzle.SubmitChampionGuess)
		guess.POST("/guess/theme", c.puzzle.SubmitThemeGuess)
		guess.POST("/giveup", c.puzzle.GiveUp)
	}
}

func (a *App) registerTriggerRoutes(router *gin.Engine, c *controllers) {
	trigger := router.Group("/api/cron")
	trigger.Use(middleware.TriggerAuthMiddleware(a.secrets))
	{
		trigger.GET("/generate", c.generation.Generate)
		trigger.POST("/generate", c.generation.Generate)
	}
}
