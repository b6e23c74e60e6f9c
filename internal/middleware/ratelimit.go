package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-app/inkwell/backend/internal/apierror"
	"github.com/inkwell-app/inkwell/backend/internal/logger"
)

// RateLimiter limits requests per client IP over a fixed window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	rate    int
	window  time.Duration
}

type clientWindow struct {
	count    int
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter allowing rate requests per
// window per client.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		rate:    rate,
		window:  window,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, w := range rl.clients {
			if now.Sub(w.lastSeen) > rl.window*2 {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[ip]
	if !ok || now.Sub(w.lastSeen) > rl.window {
		rl.clients[ip] = &clientWindow{count: 1, lastSeen: now}
		return true
	}

	w.count++
	w.lastSeen = now
	return w.count <= rl.rate
}

// RateLimit limits general API traffic to 120 requests per minute per
// client IP.
func RateLimit() gin.HandlerFunc {
	limiter := NewRateLimiter(120, time.Minute)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.allow(ip) {
			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("client_ip", ip),
			)
			c.Header("Retry-After", "60")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}
		c.Next()
	}
}
