package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rcooper/taskflow-api/internal/api/shared"
)

// RateLimitConfig controls the per-client token bucket.
type RateLimitConfig struct {
	// Rate is the sustained number of requests per second allowed per client.
	Rate rate.Limit
	// Burst is the number of requests a client may make in a burst.
	Burst int
	// CleanupInterval controls how often idle client buckets are evicted.
	CleanupInterval time.Duration
	// IdleTimeout is how long a client may be silent before its bucket is
	// evicted.
	IdleTimeout time.Duration
}

// DefaultAuthRateLimitConfig returns the limits applied to the credential
// endpoints (login, register): strict enough to slow brute forcing without
// hurting legitimate retries.
func DefaultAuthRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Rate:            rate.Every(time.Second),
		Burst:           5,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     10 * time.Minute,
	}
}

// clientLimiter pairs a token bucket with its last access time so idle
// entries can be evicted.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a per-client token bucket keyed by remote IP.
type RateLimiter struct {
	config   RateLimitConfig
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a RateLimiter and starts its background cleanup.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*clientLimiter),
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit is the middleware entry point. Requests over the limit receive 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.allow(key) {
			shared.RespondWithError(w, r, http.StatusTooManyRequests,
				"Too many requests, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rl.config.Rate, rl.config.Burst),
		}
		rl.limiters[key] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	cutoff := time.Now().Add(-rl.config.IdleTimeout)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.limiters {
		if cl.lastAccess.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// clientKey derives the bucket key from the remote address, dropping the
// ephemeral port so one client maps to one bucket.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
