package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	guard "github.com/afroforma/roommaster/internal/http/middleware"
)

type fakeLimiter struct {
	allow   bool
	err     error
	lastKey string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, requests int, window time.Duration) (bool, error) {
	f.lastKey = key
	return f.allow, f.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *fakeLimiter
		wantStatus int
	}{
		{"allowed", &fakeLimiter{allow: true}, http.StatusOK},
		{"limited", &fakeLimiter{allow: false}, http.StatusTooManyRequests},
		{"backend down fails open", &fakeLimiter{allow: false, err: errors.New("redis down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := guard.RateLimit(tt.limiter, 5, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRateLimitKeyUsesForwardedFor(t *testing.T) {
	limiter := &fakeLimiter{allow: true}
	h := guard.RateLimit(limiter, 5, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if limiter.lastKey != "ip:203.0.113.7" {
		t.Errorf("key = %q, want ip:203.0.113.7", limiter.lastKey)
	}
}
