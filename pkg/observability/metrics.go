// Package observability provides Prometheus metrics for the API services.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// RequestsTotal counts HTTP requests by method, route pattern and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roommaster_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roommaster_request_duration_seconds",
			Help:    "Request duration",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// AuthFailuresTotal counts rejected requests by guard.
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roommaster_auth_failures_total",
			Help: "Requests rejected by the auth guard chain",
		},
		[]string{"guard"},
	)

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roommaster_logins_total",
			Help: "Login attempts",
		},
		[]string{"outcome"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "roommaster_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		LoginsTotal,
		RateLimitRejectedTotal,
	)
}
