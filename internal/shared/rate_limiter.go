package shared

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitEndpointConfig configuration for rate limiting per endpoint
type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

// rateLimitStore abstracts the counter backend so a single process can use
// the in-memory cache while multi-instance deployments share counters in Redis.
type rateLimitStore interface {
	Increment(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, remaining int, resetTime time.Time, err error)
}

// RateLimiter structure for managing rate limiting
type RateLimiter struct {
	store   rateLimitStore
	config  map[string]RateLimitEndpointConfig
	logger  *zap.Logger
	metrics *AppMetrics
	mutex   sync.RWMutex
}

// RateLimitEntry cache entry for rate limiting
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// NewRateLimiter creates a new rate limiter instance. When REDIS_URL is set
// the counters live in Redis, otherwise in a local go-cache store.
func NewRateLimiter(logger *zap.Logger, metrics *AppMetrics) *RateLimiter {
	var store rateLimitStore

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL, falling back to in-memory rate limiting", zap.Error(err))
			store = newMemoryRateLimitStore()
		} else {
			store = &redisRateLimitStore{client: redis.NewClient(opts)}
		}
	} else {
		store = newMemoryRateLimitStore()
	}

	configs := map[string]RateLimitEndpointConfig{
		"POST /register": {
			Requests: 5,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"POST /login": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"GET /tasks": {
			Requests: 100,
			Window:   time.Minute,
			KeyFunc:  getUserID,
		},
		"POST /tasks": {
			Requests: 20,
			Window:   time.Minute,
			KeyFunc:  getUserID,
		},
		"PUT /tasks/:uuid": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  getUserID,
		},
		"DELETE /tasks/:uuid": {
			Requests: 5,
			Window:   time.Minute,
			KeyFunc:  getUserID,
		},
		"/tasks": {
			Requests: 100,
			Window:   time.Minute,
			KeyFunc:  getUserID,
		},
		"default": {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
	}

	return &RateLimiter{
		store:   store,
		config:  configs,
		logger:  logger,
		metrics: metrics,
		mutex:   sync.RWMutex{},
	}
}

// RateLimitMiddleware middleware for rate limiting
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		normalizedPath := rl.normalizePath(path)
		methodPath := c.Request.Method + " " + normalizedPath

		rl.mutex.RLock()
		config, exists := rl.config[methodPath]
		if !exists {
			config, exists = rl.config[normalizedPath]
			if !exists {
				config = rl.config["default"]
			}
		}
		rl.mutex.RUnlock()

		key := rl.generateKey(c, methodPath, config.KeyFunc)

		allowed, remaining, resetTime, err := rl.store.Increment(c.Request.Context(), key, config.Requests, config.Window)
		if err != nil {
			// A broken store must not take the API down with it.
			rl.logger.Error("Rate limit check failed",
				zap.String("key", key),
				zap.String("path", path),
				zap.Error(err))
			c.Next()
			return
		}

		keyType := "ip"
		if strings.Contains(key, "user_") {
			keyType = "user"
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, keyType)
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, keyType)
		}

		c.Next()
	}
}

// normalizePath replaces task identifiers with the :uuid route pattern
func (rl *RateLimiter) normalizePath(path string) string {
	if strings.HasPrefix(path, "/tasks/") {
		parts := strings.Split(path, "/")
		if len(parts) >= 3 {
			parts[2] = ":uuid"
			return strings.Join(parts, "/")
		}
	}
	return path
}

// generateKey generates unique key for rate limiting
func (rl *RateLimiter) generateKey(c *gin.Context, path string, keyFunc func(*gin.Context) string) string {
	identifier := keyFunc(c)
	return fmt.Sprintf("rate_limit:%s:%s", path, identifier)
}

// getUserID extracts authenticated user ID
func getUserID(c *gin.Context) string {
	if userID, exists := c.Get("x-user-id"); exists {
		return fmt.Sprintf("user_%v", userID)
	}
	return GetClientIP(c)
}

// SetConfig allows configuring rate limits for specific endpoints
func (rl *RateLimiter) SetConfig(path string, config RateLimitEndpointConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[path] = config
}

type memoryRateLimitStore struct {
	cache *cache.Cache
	mutex sync.Mutex
}

func newMemoryRateLimitStore() *memoryRateLimitStore {
	return &memoryRateLimitStore{
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *memoryRateLimitStore) Increment(_ context.Context, key string, limit int, window time.Duration) (bool, int, time.Time, error) {
	now := time.Now()

	// Write lock to prevent race conditions between Get and Set
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if entry, found := s.cache.Get(key); found {
		rateLimitEntry := entry.(RateLimitEntry)

		if now.After(rateLimitEntry.ResetTime) {
			resetTime := now.Add(window)
			s.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, window)
			return true, limit - 1, resetTime, nil
		}

		if rateLimitEntry.Count >= limit {
			return false, 0, rateLimitEntry.ResetTime, nil
		}

		rateLimitEntry.Count++
		s.cache.Set(key, rateLimitEntry, cache.DefaultExpiration)

		return true, limit - rateLimitEntry.Count, rateLimitEntry.ResetTime, nil
	}

	resetTime := now.Add(window)
	s.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, window)

	return true, limit - 1, resetTime, nil
}

type redisRateLimitStore struct {
	client *redis.Client
}

func (s *redisRateLimitStore) Increment(ctx context.Context, key string, limit int, window time.Duration) (bool, int, time.Time, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, time.Time{}, err
		}
	}

	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}

	if ttl < 0 {
		// Counter lost its expiration somehow, restore the window
		ttl = window
		s.client.Expire(ctx, key, window)
	}

	resetTime := time.Now().Add(ttl)

	if count > int64(limit) {
		return false, 0, resetTime, nil
	}

	return true, limit - int(count), resetTime, nil
}
