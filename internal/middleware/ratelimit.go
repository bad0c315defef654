package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// InMemoryRateLimiter is a sliding-window counter per key. Keys are
// client IPs for anonymous traffic and user IDs once authenticated, so
// promoters behind a shared NAT don't starve each other.
type InMemoryRateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	r := &InMemoryRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
	go r.cleanup()
	return r
}

// Allow records a hit for the key and reports whether it stays within
// the window limit.
func (r *InMemoryRateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	valid := r.prune(key, time.Now())
	if len(valid) >= r.limit {
		return false
	}
	r.requests[key] = append(valid, time.Now())
	return true
}

// Remaining reports how many hits the key has left in the current
// window, without recording one.
func (r *InMemoryRateLimiter) Remaining(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	left := r.limit - len(r.prune(key, time.Now()))
	if left < 0 {
		return 0
	}
	return left
}

// prune drops entries older than the window; caller holds the lock.
func (r *InMemoryRateLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-r.window)
	times := r.requests[key]
	valid := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.requests[key] = valid
	return valid
}

func (r *InMemoryRateLimiter) cleanup() {
	tick := time.NewTicker(r.window)
	for range tick.C {
		r.mu.Lock()
		now := time.Now()
		for k := range r.requests {
			if len(r.prune(k, now)) == 0 {
				delete(r.requests, k)
			}
		}
		r.mu.Unlock()
	}
}

// RateLimit limits by user ID when the request is authenticated and by
// client IP otherwise. On rejection it sets Retry-After to the window.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(uint); ok {
				key = "user:" + strconv.FormatUint(uint64(id), 10)
			}
		}
		if !limiter.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window/time.Second)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
