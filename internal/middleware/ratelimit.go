package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimitMiddleware limits requests per client IP over a sliding window
type RateLimitMiddleware struct {
	requests  map[string][]time.Time
	lastSweep time.Time
	mu        sync.Mutex
	now       func() time.Time
}

// NewRateLimitMiddleware creates a new rate limiting middleware
func NewRateLimitMiddleware() *RateLimitMiddleware {
	return &RateLimitMiddleware{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// RateLimit admits at most maxRequests per client IP within window
func (m *RateLimitMiddleware) RateLimit(maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := clientIP(r)
			now := m.now()

			m.mu.Lock()
			if now.Sub(m.lastSweep) >= window {
				m.sweep(now, window)
			}
			recent := m.requests[clientIP][:0]
			for _, ts := range m.requests[clientIP] {
				if now.Sub(ts) < window {
					recent = append(recent, ts)
				}
			}

			if len(recent) >= maxRequests {
				m.requests[clientIP] = recent
				retry := window - now.Sub(recent[0])
				m.mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
				writeMessage(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			m.requests[clientIP] = append(recent, now)
			m.mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

// sweep forgets clients whose newest request has left the window. Callers
// hold m.mu.
func (m *RateLimitMiddleware) sweep(now time.Time, window time.Duration) {
	for ip, stamps := range m.requests {
		if len(stamps) == 0 || now.Sub(stamps[len(stamps)-1]) >= window {
			delete(m.requests, ip)
		}
	}
	m.lastSweep = now
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP
// middleware has already resolved from forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
