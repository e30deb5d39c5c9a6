package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authDuration tracks how long POST /auth/token takes
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Token issuance duration by result",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"result"},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Bearer token verification duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// forbiddenAttempts counts valid tokens lacking the required scope
	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Forbidden access attempts by required scope and method",
		},
		[]string{"scope", "method"},
	)
)

// RecordAuthDuration records the duration of one token request.
func RecordAuthDuration(result string, durationSeconds float64) {
	authDuration.WithLabelValues(result).Observe(durationSeconds)
}

// RecordAuthzCheckDuration records the duration of one bearer check.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordForbiddenAttempt counts a request rejected with 403.
func RecordForbiddenAttempt(scope, method string) {
	forbiddenAttempts.WithLabelValues(scope, method).Inc()
}
