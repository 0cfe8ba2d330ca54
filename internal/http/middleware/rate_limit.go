package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/pkg/logger"
	"github.com/afroforma/roommaster/pkg/observability"
)

// Limiter checks whether another request is allowed for a key within the
// window. Implementations fail open on backend errors.
type Limiter interface {
	Allow(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
}

// RateLimit limits requests per client IP. Applied to the login route only.
func RateLimit(limiter Limiter, requests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + clientIP(r)

			ok, err := limiter.Allow(r.Context(), key, requests, window)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limit check failed", "error", err)
				ok = true
			}
			if !ok {
				observability.RateLimitRejectedTotal.Inc()
				response.RateLimit(w, "Too many requests. Try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the real client IP from the request
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
