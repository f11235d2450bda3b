package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/bpofinance/bpofinance/internal/service"
)

// RateLimitMiddleware enforces the per-client daily request budget
type RateLimitMiddleware struct {
	rateLimitService *service.RateLimitService
	dailyLimit       int
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rateLimitService *service.RateLimitService, dailyLimit int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		dailyLimit:       dailyLimit,
	}
}

// RateLimit checks and enforces the daily budget, keyed by client address
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := m.rateLimitService.CheckAndIncrement(r.Context(), clientKey(r), m.dailyLimit)
		if err != nil {
			// Redis trouble should not take the API down
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		w.Header().Set("X-RateLimit-Used", fmt.Sprintf("%d", result.Used))

		if !result.Allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", result.RetryAfterSecs))
			http.Error(w, `{"status":429,"error":"Too Many Requests","message":"daily request limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller for rate limiting purposes
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
