package shared

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"tasktracker/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResponseCacheConfig configuration for response cache
type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// ResponseCache caches GET responses per user for a short TTL.
type ResponseCache struct {
	cache   *cache.Cache
	config  map[string]ResponseCacheConfig
	logger  *zap.Logger
	metrics *AppMetrics
}

type CachedResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
	Timestamp  time.Time           `json:"timestamp"`
}

func NewResponseCache(logger *zap.Logger, metrics *AppMetrics) *ResponseCache {
	c := cache.New(5*time.Minute, 10*time.Minute)

	configs := map[string]ResponseCacheConfig{
		"/tasks": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
		"default": {
			TTL:     1 * time.Second,
			Enabled: true,
		},
	}

	return &ResponseCache{
		cache:   c,
		config:  configs,
		logger:  logger,
		metrics: metrics,
	}
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		config, exists := rc.config[path]
		if !exists {
			config = rc.config["default"]
		}

		if !config.Enabled {
			c.Next()
			return
		}

		cacheKey := rc.generateCacheKey(c, path)

		if cachedResp, found := rc.cache.Get(cacheKey); found {
			cached := cachedResp.(CachedResponse)

			if time.Since(cached.Timestamp) < config.TTL {
				_, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
					attribute.String("cache.key", cacheKey),
					attribute.String("cache.path", path),
					attribute.String("cache.age", time.Since(cached.Timestamp).String()),
				})
				defer span.End()

				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(c.Request.Context(), path)
				}

				rc.logger.Debug("Cache hit",
					zap.String("path", path),
					zap.String("cache_key", cacheKey),
					zap.Duration("age", time.Since(cached.Timestamp)))

				for key, values := range cached.Headers {
					for _, value := range values {
						c.Header(key, value)
					}
				}

				c.Header("X-Cache", "HIT")
				c.Header("X-Cache-Age", fmt.Sprintf("%.0f", time.Since(cached.Timestamp).Seconds()))

				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			}

			rc.cache.Delete(cacheKey)
		}

		ctx, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.miss", []attribute.KeyValue{
			attribute.String("cache.key", cacheKey),
			attribute.String("cache.path", path),
		})
		defer span.End()

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			_, cacheSpan := tracing.CreateChildSpan(ctx, "cache.response.store", []attribute.KeyValue{
				attribute.String("cache.key", cacheKey),
				attribute.Int("cache.status_code", writer.statusCode),
				attribute.Int("cache.body_size", writer.body.Len()),
				attribute.String("cache.ttl", config.TTL.String()),
			})
			cacheSpan.End()

			cachedResp := CachedResponse{
				StatusCode: writer.statusCode,
				Headers:    writer.Header(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}

			rc.cache.Set(cacheKey, cachedResp, config.TTL)

			c.Header("X-Cache", "MISS")
		}
	}
}

// generateCacheKey builds a key from path, query string and the caller
// identity, so one user's listing never leaks into another's cache slot.
func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string) string {
	keyParts := []string{path}

	if c.Request.URL.RawQuery != "" {
		keyParts = append(keyParts, c.Request.URL.RawQuery)
	}

	if userID, exists := c.Get("x-user-id"); exists {
		keyParts = append(keyParts, fmt.Sprintf("user_%v", userID))
	} else {
		keyParts = append(keyParts, fmt.Sprintf("ip_%s", GetClientIP(c)))
	}

	keyString := strings.Join(keyParts, "|")
	hash := md5.Sum([]byte(keyString))

	return fmt.Sprintf("cache:%s:%x", path, hash)
}

// InvalidateCache invalidates cache entries for a specific user and path
func (rc *ResponseCache) InvalidateCache(userID int, path string) {
	keys := rc.cache.Items()

	for key := range keys {
		if strings.Contains(key, fmt.Sprintf("user_%d", userID)) && strings.Contains(key, path) {
			rc.cache.Delete(key)
		}
	}
}

func (rc *ResponseCache) InvalidateAllCache() {
	rc.cache.Flush()
}

// SetConfig allows configuring cache for specific endpoints
func (rc *ResponseCache) SetConfig(path string, config ResponseCacheConfig) {
	rc.config[path] = config
}

// responseWriter intercepts the body so it can be stored after the handler runs
type responseWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
