package shared

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func newTestRateLimiter() *RateLimiter {
	return NewRateLimiter(zap.NewNop(), NewAppMetrics(prometheus.NewRegistry()))
}

func TestNewRateLimiter(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	Expect(rl).ToNot(BeNil())
	Expect(rl.store).ToNot(BeNil())
	Expect(rl.config).ToNot(BeNil())
	Expect(rl.logger).ToNot(BeNil())
	Expect(rl.metrics).ToNot(BeNil())
}

func TestRateLimitMiddleware_AllowedRequests(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.RateLimitMiddleware())

	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(w.Header().Get("X-RateLimit-Limit")).ToNot(BeEmpty())
		Expect(w.Header().Get("X-RateLimit-Remaining")).ToNot(BeEmpty())
	}
}

func TestRateLimitMiddleware_ExceedLimit(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.RateLimitMiddleware())

	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Default bucket allows 60 requests per minute
	for i := 0; i < 65; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		if i < 60 {
			Expect(w.Code).To(Equal(200))
		} else {
			Expect(w.Code).To(Equal(429))
		}
	}
}

func TestRateLimitMiddleware_UserBasedLimiting(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("x-user-id", "123")
		c.Next()
	})
	router.Use(rl.RateLimitMiddleware())

	callCount := 0
	router.POST("/tasks", func(c *gin.Context) {
		callCount++
		c.JSON(201, gin.H{"method": "POST", "count": callCount})
	})

	// POST /tasks allows 20 per minute per user
	expectedRemaining := []int{19, 18, 17, 16, 15}

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/tasks", strings.NewReader(`{"title_name":"test"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(201))
		Expect(callCount).To(Equal(i + 1))

		remaining := w.Header().Get("X-RateLimit-Remaining")
		Expect(remaining).To(Equal(strconv.Itoa(expectedRemaining[i])),
			"POST Request %d: Expected remaining %d, got %s",
			i+1, expectedRemaining[i], remaining)
	}
}

func TestRateLimitMiddleware_DELETERequests(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("x-user-id", "123")
		c.Next()
	})
	router.Use(rl.RateLimitMiddleware())

	callCount := 0
	router.DELETE("/tasks/:uuid", func(c *gin.Context) {
		callCount++
		c.JSON(200, gin.H{"method": "DELETE", "count": callCount})
	})

	// DELETE /tasks/:uuid allows 5 per minute per user
	expectedRemaining := []int{4, 3, 2, 1, 0}

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/tasks/123", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(callCount).To(Equal(i + 1))

		remaining := w.Header().Get("X-RateLimit-Remaining")
		Expect(remaining).To(Equal(strconv.Itoa(expectedRemaining[i])),
			"DELETE Request %d: Expected remaining %d, got %s",
			i+1, expectedRemaining[i], remaining)
	}
}

func TestRateLimitMiddleware_WithCache(t *testing.T) {
	RegisterTestingT(t)
	logger := zap.NewNop()
	metrics := NewAppMetrics(prometheus.NewRegistry())
	rl := NewRateLimiter(logger, metrics)
	cache := NewResponseCache(logger, metrics)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("x-user-id", "123")
		c.Next()
	})
	router.Use(cache.CacheMiddleware())
	router.Use(rl.RateLimitMiddleware())

	callCount := 0
	router.GET("/tasks", func(c *gin.Context) {
		callCount++
		c.JSON(200, gin.H{"method": "GET", "count": callCount})
	})

	// First request is a cache MISS and consumes rate limit
	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/tasks", nil)
	router.ServeHTTP(w1, req1)
	Expect(w1.Code).To(Equal(200))
	Expect(w1.Header().Get("X-Cache")).To(Equal("MISS"))
	Expect(w1.Header().Get("X-RateLimit-Remaining")).To(Equal("99"))

	// Second request is served from cache and does not consume rate limit
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/tasks", nil)
	router.ServeHTTP(w2, req2)
	Expect(w2.Code).To(Equal(200))
	Expect(w2.Header().Get("X-Cache")).To(Equal("HIT"))
	Expect(w2.Header().Get("X-RateLimit-Remaining")).To(Equal("99"))
	Expect(callCount).To(Equal(1))
}

func TestRateLimiterSetConfig(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	config := RateLimitEndpointConfig{
		Requests: 5,
		Window:   time.Minute,
		KeyFunc:  GetClientIP,
	}

	rl.SetConfig("/custom", config)

	Expect(rl.config["/custom"].Requests).To(Equal(config.Requests))
	Expect(rl.config["/custom"].Window).To(Equal(config.Window))
	Expect(rl.config["/custom"].KeyFunc).ToNot(BeNil())
}

func TestRateLimitMiddleware_NoDoubleCounting(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("x-user-id", "123")
		c.Next()
	})
	router.Use(rl.RateLimitMiddleware())

	callCount := 0
	var callCountMutex sync.Mutex
	router.POST("/tasks", func(c *gin.Context) {
		callCountMutex.Lock()
		callCount++
		callCountMutex.Unlock()
		c.JSON(201, gin.H{"method": "POST"})
	})

	// Each concurrent request must consume exactly one slot
	numRequests := 10
	results := make([]int, numRequests)
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		index := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/tasks", strings.NewReader(`{"title_name":"test"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			remaining, _ := strconv.Atoi(w.Header().Get("X-RateLimit-Remaining"))
			results[index] = remaining
		}()
	}

	wg.Wait()

	Expect(callCount).To(Equal(numRequests))

	expectedRemaining := []int{19, 18, 17, 16, 15, 14, 13, 12, 11, 10}
	sort.Ints(results)
	sort.Ints(expectedRemaining)

	Expect(results).To(Equal(expectedRemaining),
		"Concurrent requests should have unique remaining counts: %v", results)
}
