package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/rcooper/taskflow-api/internal/api/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(handler http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BurstThenLimit(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:            rate.Every(time.Hour), // effectively no refill during the test
		Burst:           3,
		CleanupInterval: time.Minute,
		IdleTimeout:     time.Minute,
	})
	defer rl.Stop()

	handler := rl.Limit(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:1234"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "10.0.0.1:1234"))
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	t.Parallel()

	rl := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:            rate.Every(time.Hour),
		Burst:           1,
		CleanupInterval: time.Minute,
		IdleTimeout:     time.Minute,
	})
	defer rl.Stop()

	handler := rl.Limit(okHandler())

	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "10.0.0.1:1234"))

	// A different client gets its own bucket.
	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.2:1234"))

	// Same host, different port, shares the first client's bucket.
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "10.0.0.1:9999"))
}
