package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimitMiddleware()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	handler := limiter.RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit("192.168.1.1:12345"))
	assert.Equal(t, http.StatusOK, hit("192.168.1.1:23456"))
	assert.Equal(t, http.StatusTooManyRequests, hit("192.168.1.1:34567"))
	assert.Equal(t, http.StatusOK, hit("192.168.1.2:12345"))

	clock = clock.Add(time.Minute)
	assert.Equal(t, http.StatusOK, hit("192.168.1.1:12345"))
}

func TestRateLimitMiddleware_RetryAfter(t *testing.T) {
	limiter := NewRateLimitMiddleware()
	handler := limiter.RateLimit(1, 30*time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_ForgetsIdleClients(t *testing.T) {
	limiter := NewRateLimitMiddleware()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	handler := limiter.RateLimit(5, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Len(t, limiter.requests, 3)

	clock = clock.Add(2 * time.Minute)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.4:1"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Len(t, limiter.requests, 1)
	assert.Contains(t, limiter.requests, "10.0.0.4")
}
