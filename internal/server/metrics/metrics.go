// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Authentication outcomes used as the "outcome" label.
const (
	AuthSuccess    = "success"
	AuthUnknownKey = "unknown_key"
	AuthBadRequest = "bad_request"
	AuthError      = "error"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "passgate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "passgate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "passgate",
			Name:      "auth_attempts_total",
			Help:      "Passcode authentication attempts by outcome.",
		},
		[]string{"outcome"},
	)
	sessionChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "passgate",
			Name:      "session_checks_total",
			Help:      "Session verifications by transport and result.",
		},
		[]string{"transport", "result"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, authAttempts, sessionChecks)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordAuthAttempt(outcome string) {
	RegisterMetrics()
	authAttempts.WithLabelValues(outcome).Inc()
}

// RecordSessionCheck counts one verification; result is "valid", "forbidden" or "unauthorized".
func RecordSessionCheck(transport, result string) {
	RegisterMetrics()
	sessionChecks.WithLabelValues(transport, result).Inc()
}
