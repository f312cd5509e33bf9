package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vitalhq/medboard/backend/internal/config"
	"github.com/vitalhq/medboard/backend/pkg/response"
)

const clientIdleTTL = 5 * time.Minute

// client tracks one source IP's token bucket and the last time it was used,
// so idle entries can be pruned.
type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP. It fronts the public auth
// endpoints to slow credential-guessing against login and refresh.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
}

// NewRateLimiter creates a limiter allowing rps requests per second with
// the given burst per IP. Non-positive values fall back to the built-in
// defaults so a config file without a rate_limit block stays usable.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = config.DefaultConfig().RateLimit.AuthRPS
	}
	if burst <= 0 {
		burst = config.DefaultConfig().RateLimit.AuthBurst
	}

	rl := &RateLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go rl.pruneLoop()
	return rl
}

// NewAuthRateLimiter builds the limiter for the auth endpoints from config.
func NewAuthRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	return NewRateLimiter(cfg.AuthRPS, cfg.AuthBurst)
}

func (rl *RateLimiter) bucketFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{bucket: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.bucket
}

// prune drops clients idle since before the cutoff.
func (rl *RateLimiter) prune(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cl := range rl.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) pruneLoop() {
	ticker := time.NewTicker(clientIdleTTL)
	defer ticker.Stop()
	for range ticker.C {
		rl.prune(time.Now().Add(-clientIdleTTL))
	}
}

// Middleware returns a Gin middleware enforcing the per-IP limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.bucketFor(c.ClientIP()).Allow() {
			response.TooManyRequests(c, "too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
