package api

import (
	"tasktracker/internal/adapter/http/handler"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/shared"
	. "tasktracker/pkg/auth"

	"github.com/gin-gonic/gin"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	TaskHandler *handler.TaskHandler
}

func SetupRouter(handlers HandlersConfig, metrics *shared.AppMetrics, logger *shared.LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, shared.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *shared.AppMetrics, logger *shared.LokiLogger, config *shared.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	shared.SetupGinMiddlewareWithConfig(router, "tasktracker", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	if handlers.TaskHandler != nil {
		setupProtectedRoutes(router, handlers.TaskHandler)
	}

	return router
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
	}
}

func setupProtectedRoutes(router *gin.Engine, taskHandler *handler.TaskHandler) {
	protected := router.Group("/")
	protected.Use(middleware.CurrentMiddleware())
	protected.Use(GinJwtMiddleware())
	{
		protected.GET("/tasks", taskHandler.GetAllTasks)
		protected.POST("/tasks", taskHandler.CreateTask)
		protected.GET("/tasks/:uuid", taskHandler.GetTask)
		protected.PUT("/tasks/:uuid", taskHandler.UpdateTask)
		protected.DELETE("/tasks/:uuid", taskHandler.DeleteByUUID)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	if handlers.TaskHandler != nil {
		setupProtectedRoutes(router, handlers.TaskHandler)
	}

	return router
}
