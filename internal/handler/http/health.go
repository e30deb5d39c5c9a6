// Package http provides the operational HTTP handlers and the middleware
// chain of the journal API: health probes, metrics, logging, panic recovery,
// input limits and rate limiting.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"journal-api/internal/handler/http/respond"
	"journal-api/internal/observability/logging"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"

	// pool utilisation above this ratio reports the database as degraded
	poolDegradedRatio = 0.8

	pingTimeout = 2 * time.Second
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// DBChecker is satisfied by *sql.DB and *sqlx.DB.
type DBChecker interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// BreakerStater exposes the state of the store circuit breaker.
type BreakerStater interface {
	State() gobreaker.State
}

// HealthHandler reports database connectivity, connection pool usage and
// the store circuit breaker state.
type HealthHandler struct {
	DB      DBChecker
	Breaker BreakerStater // optional
	Version string

	now func() time.Time
}

// ServeHTTP godoc
// @Summary      Health check
// @Description  Reports database and circuit breaker status
// @Tags         ops
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.now != nil {
		now = h.now
	}

	checks := map[string]CheckStatus{
		"database": h.checkDatabase(r.Context()),
	}
	if h.Breaker != nil {
		checks["circuit_breaker"] = checkBreaker(h.Breaker.State())
	}

	overall := statusHealthy
	for _, c := range checks {
		switch c.Status {
		case statusUnhealthy:
			overall = statusUnhealthy
		case statusDegraded:
			if overall == statusHealthy {
				overall = statusDegraded
			}
		}
	}

	code := http.StatusOK
	if overall == statusUnhealthy {
		code = http.StatusServiceUnavailable
		logging.FromContext(r.Context()).Warn("health check failed", slog.Any("checks", checks))
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    overall,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: statusUnhealthy, Message: "database not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{
			Status:  statusUnhealthy,
			Message: "database ping failed: " + respond.SanitizeError(err),
		}
	}
	latency := time.Since(start)

	stats := h.DB.Stats()
	details := map[string]any{
		"latency_ms":       latency.Milliseconds(),
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"max_open":         stats.MaxOpenConnections,
		"wait_count":       stats.WaitCount,
	}

	// MaxOpenConnections == 0 means unlimited
	if stats.MaxOpenConnections > 0 {
		ratio := float64(stats.InUse) / float64(stats.MaxOpenConnections)
		details["utilization"] = ratio
		if ratio >= poolDegradedRatio {
			return CheckStatus{
				Status:  statusDegraded,
				Message: "connection pool nearly exhausted",
				Details: details,
			}
		}
	}

	return CheckStatus{Status: statusHealthy, Details: details}
}

func checkBreaker(state gobreaker.State) CheckStatus {
	cs := CheckStatus{Details: map[string]any{"state": state.String()}}
	switch state {
	case gobreaker.StateOpen:
		cs.Status = statusUnhealthy
		cs.Message = "store circuit breaker is open"
	case gobreaker.StateHalfOpen:
		cs.Status = statusDegraded
		cs.Message = "store circuit breaker is probing"
	default:
		cs.Status = statusHealthy
	}
	return cs
}

// ReadyHandler answers 200 "ready" once the database accepts pings.
type ReadyHandler struct {
	DB DBChecker
}

// ServeHTTP godoc
// @Summary      Readiness probe
// @Tags         ops
// @Produce      plain
// @Success      200 {string} string "ready"
// @Failure      503 {string} string "not ready"
// @Router       /ready [get]
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		respond.Text(w, http.StatusServiceUnavailable, "not ready: database not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		logging.FromContext(r.Context()).Warn("readiness ping failed",
			slog.String("error", respond.SanitizeError(err)))
		respond.Text(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	respond.Text(w, http.StatusOK, "ready")
}

// LiveHandler always answers 200 "alive".
type LiveHandler struct{}

// ServeHTTP godoc
// @Summary      Liveness probe
// @Tags         ops
// @Produce      plain
// @Success      200 {string} string "alive"
// @Router       /live [get]
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	respond.Text(w, http.StatusOK, "alive")
}
