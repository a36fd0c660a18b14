package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	ClickUpCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clickup_call_latency_ms",
			Help:    "ClickUp API call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"operation", "status"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"}, // outcome: success, invalid, error
	)
)

// RecordHTTPRequestDuration records the latency of one inbound request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordClickUpCallLatency records the latency of one upstream call.
func RecordClickUpCallLatency(operation, status string, duration time.Duration) {
	ClickUpCallLatency.WithLabelValues(operation, status).Observe(float64(duration.Milliseconds()))
}

// IncrementLoginAttempts counts a login attempt by outcome.
func IncrementLoginAttempts(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}
