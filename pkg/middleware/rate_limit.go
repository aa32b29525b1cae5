package middleware

import (
	"bitwise74/user-api/pkg/response"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiterConfig struct {
	RequestsPerSecond int
	Burst             int
	CleanupInterval   time.Duration
	TTL               time.Duration
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	cfg      RateLimiterConfig
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.CleanupInterval == 0 {
		config.CleanupInterval = time.Minute
	}
	if config.TTL == 0 {
		config.TTL = 3 * time.Minute
	}
	if config.Burst < config.RequestsPerSecond {
		config.Burst = config.RequestsPerSecond
	}

	return &RateLimiter{
		cfg:      config,
		visitors: make(map[string]*visitor),
	}
}

func (r *RateLimiter) getVisitor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(r.cfg.RequestsPerSecond), r.cfg.Burst)
		r.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, v := range r.visitors {
		if time.Since(v.lastSeen) > r.cfg.TTL {
			delete(r.visitors, ip)
		}
	}
}

// Run forgets idle visitors until ctx is done
func (r *RateLimiter) Run(ctx context.Context) {
	t := time.NewTicker(r.cfg.CleanupInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.cleanup()
		}
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.getVisitor(c.ClientIP()).Allow() {
			response.Fail(c, http.StatusTooManyRequests, "Too many requests")
			return
		}

		c.Next()
	}
}
