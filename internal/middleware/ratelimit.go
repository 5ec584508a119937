package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateLimitState tracks one client's fixed window
type rateLimitState struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed-window in-memory per-IP limiter for the public
// ingestion endpoints
type RateLimiter struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	clients map[string]*rateLimitState
}

// NewRateLimiter creates a rate limiter allowing max requests per window
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  window,
		clients: make(map[string]*rateLimitState),
	}
}

// Middleware returns the gin handler enforcing the limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.clients[ip]
	if !ok || now.After(state.expiresAt) {
		rl.clients[ip] = &rateLimitState{count: 1, expiresAt: now.Add(rl.window)}
		rl.sweep(now)
		return true
	}

	if state.count >= rl.max {
		return false
	}
	state.count++
	return true
}

// sweep drops expired windows; called under the lock on window rollover
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, state := range rl.clients {
		if now.After(state.expiresAt) {
			delete(rl.clients, ip)
		}
	}
}
