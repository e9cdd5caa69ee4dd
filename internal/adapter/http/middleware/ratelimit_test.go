package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rejected := 0
	rl.OnReject(func() { rejected++ })

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("1.2.3.4:1000"))
	assert.Equal(t, http.StatusTooManyRequests, do("1.2.3.4:2000"), "same host, different port")
	assert.Equal(t, http.StatusOK, do("5.6.7.8:1000"))
	assert.Equal(t, 1, rejected)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 10)
	rl.now = func() time.Time { return now }

	rl.getLimiter("old")
	now = now.Add(time.Hour)
	rl.getLimiter("fresh")

	rl.CleanupLimiters(30 * time.Minute)

	assert.Equal(t, 1, rl.Len())
}
