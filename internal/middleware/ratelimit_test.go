package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Minute)

	assert.True(t, limiter.Allow("ip:1.2.3.4"))
	assert.False(t, limiter.Allow("ip:1.2.3.4"))
	assert.True(t, limiter.Allow("user:7"))

	assert.Equal(t, 0, limiter.Remaining("ip:1.2.3.4"))
	assert.Equal(t, 1, limiter.Remaining("ip:9.9.9.9"))
}

func TestRateLimit_BlocksOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewInMemoryRateLimiter(2, time.Minute)
	r := gin.New()
	r.GET("/ping", RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimit_AuthenticatedUsersKeyedSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewInMemoryRateLimiter(1, time.Minute)
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		c.Set("user_id", uint(42))
	}, RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The user burned their allowance, not the shared IP bucket.
	assert.Equal(t, 0, limiter.Remaining("user:42"))
	assert.Equal(t, 1, limiter.Remaining("ip:192.0.2.1"))
}
