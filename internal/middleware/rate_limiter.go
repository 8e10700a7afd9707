package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter is the token bucket of one client IP
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP
type RateLimiter struct {
	clients       map[string]*clientLimiter
	mutex         sync.Mutex
	limiterRate   rate.Limit
	burst         int
	idleTimeout   time.Duration
	cleanupTicker *time.Ticker
	done          chan struct{}
	stopOnce      sync.Once
	now           func() time.Time
}

// NewRateLimiter creates a new rate limiter allowing requestsPerMinute per IP.
// Every cleanupInterval, clients idle for at least cleanupInterval are forgotten.
func NewRateLimiter(requestsPerMinute float64, burst int, cleanupInterval time.Duration) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	limiter := &RateLimiter{
		clients:       make(map[string]*clientLimiter),
		limiterRate:   rate.Limit(requestsPerMinute / 60), // Convert to per-second rate
		burst:         burst,
		idleTimeout:   cleanupInterval,
		cleanupTicker: time.NewTicker(cleanupInterval),
		done:          make(chan struct{}),
		now:           time.Now,
	}

	go limiter.cleanup()

	return limiter
}

// cleanup periodically removes idle limiters to prevent memory leaks
func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.evictIdle()
		case <-rl.done:
			return
		}
	}
}

// evictIdle drops clients not seen within idleTimeout. Active clients keep their
// bucket, so a cleanup never refills a throttled client.
func (rl *RateLimiter) evictIdle() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := rl.now().Add(-rl.idleTimeout)
	for ip, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// Stop stops the rate limiter cleanup
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanupTicker.Stop()
		close(rl.done)
	})
}

// allow records a request from ip and reports whether it is within the limit
func (rl *RateLimiter) allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	client, exists := rl.clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limiterRate, rl.burst)}
		rl.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
