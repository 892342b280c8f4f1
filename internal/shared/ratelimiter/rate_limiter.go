// Package ratelimiter limits how often a caller may perform an operation.
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"userhub/internal/api"
)

// Limiter reports whether an operation keyed by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter is a fixed-window limiter with one window per key.
type RateLimiter struct {
	limit    int           // max operations per window
	interval time.Duration // window length

	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// Compile-time check to ensure RateLimiter implements Limiter.
var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter creates a RateLimiter allowing limit operations per interval and key.
// A non-positive limit disables limiting.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow counts one operation for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok {
		rl.prune(now)
		w = &window{lastReset: now}
		rl.windows[key] = w
	}
	// reset after the interval
	if now.Sub(w.lastReset) >= rl.interval {
		w.count = 0
		w.lastReset = now
	}

	w.count++
	return w.count <= rl.limit
}

// prune drops windows that have already expired. Callers hold mu.
func (rl *RateLimiter) prune(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.NewErrorResponse("Too many requests"))
			return
		}
		c.Next()
	}
}
