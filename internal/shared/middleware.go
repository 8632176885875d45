package shared

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func MetricsMiddleware(metrics *AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		duration := time.Since(start)

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			c.FullPath(),
			statusLabel(c.Writer.Status()),
			duration,
		)
	}
}

func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *AppMetrics, logger *LokiLogger) {
	SetupGinMiddlewareWithConfig(router, serviceName, metrics, logger, GetDefaultConfig())
}

func SetupGinMiddlewareWithConfig(router *gin.Engine, serviceName string, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) {
	// OpenTelemetry tracing middleware
	router.Use(otelgin.Middleware(serviceName))

	router.Use(LoggingMiddleware(logger))
	router.Use(MetricsMiddleware(metrics))

	enforcer := NewHTTPSEnforcer(logger.Logger.Logger)
	enforcer.SetEnabled(config.EnforceHTTPS || enforcer.IsEnabled())
	router.Use(enforcer.HTTPSMiddleware())

	if config.RateLimitEnabled {
		limiter := NewRateLimiter(logger.Logger.Logger, metrics)
		for path, limit := range config.RateLimitConfigs {
			limiter.SetConfig(path, RateLimitEndpointConfig{
				Requests: limit.Requests,
				Window:   limit.Window,
				KeyFunc:  GetClientIP,
			})
		}
		router.Use(limiter.RateLimitMiddleware())
	}

	if config.CacheEnabled {
		responseCache := NewResponseCache(logger.Logger.Logger, metrics)
		for path, cacheConfig := range config.CacheConfigs {
			responseCache.SetConfig(path, cacheConfig)
		}
		router.Use(responseCache.CacheMiddleware())
	}
}
