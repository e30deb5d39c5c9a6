package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── スタブ実装 ───────── */

type fakeDB struct {
	err   error
	stats sql.DBStats
}

func (f *fakeDB) PingContext(context.Context) error { return f.err }
func (f *fakeDB) Stats() sql.DBStats                { return f.stats }

type fakeBreaker gobreaker.State

func (f fakeBreaker) State() gobreaker.State { return gobreaker.State(f) }

func serveHealth(t *testing.T, h *HealthHandler) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

/* ───────── テスト ───────── */

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedStatus int
		expectedHealth string
	}{
		{
			name:           "healthy database",
			setupMock:      func(mock sqlmock.Sqlmock) { mock.ExpectPing() },
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
		},
		{
			name: "database connection error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setupMock(mock)

			fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			rec, body := serveHealth(t, &HealthHandler{
				DB:      db,
				Version: "test-version",
				now:     func() time.Time { return fixed },
			})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedHealth, body.Status)
			assert.Equal(t, "test-version", body.Version)
			assert.Equal(t, "2024-03-01T12:00:00Z", body.Timestamp)
			assert.Contains(t, body.Checks, "database")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	rec, body := serveHealth(t, &HealthHandler{Version: "v"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "database not configured", body.Checks["database"].Message)
}

func TestHealthHandler_PingErrorIsSanitized(t *testing.T) {
	db := &fakeDB{err: errors.New("dial postgres://app:hunter2@db:5432/journals failed")}
	_, body := serveHealth(t, &HealthHandler{DB: db})

	assert.NotContains(t, body.Checks["database"].Message, "hunter2")
}

func TestHealthHandler_PoolUtilization(t *testing.T) {
	tests := []struct {
		name     string
		stats    sql.DBStats
		expected string
	}{
		{"unlimited pool", sql.DBStats{MaxOpenConnections: 0, InUse: 50}, "healthy"},
		{"low utilization", sql.DBStats{MaxOpenConnections: 10, InUse: 2}, "healthy"},
		{"high utilization", sql.DBStats{MaxOpenConnections: 10, InUse: 8}, "degraded"},
		{"small pool exhausted", sql.DBStats{MaxOpenConnections: 1, InUse: 1}, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serveHealth(t, &HealthHandler{DB: &fakeDB{stats: tt.stats}})

			// degraded still serves traffic
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expected, body.Status)
			assert.Equal(t, tt.expected, body.Checks["database"].Status)
		})
	}
}

func TestHealthHandler_CircuitBreaker(t *testing.T) {
	tests := []struct {
		state    gobreaker.State
		code     int
		expected string
	}{
		{gobreaker.StateClosed, http.StatusOK, "healthy"},
		{gobreaker.StateHalfOpen, http.StatusOK, "degraded"},
		{gobreaker.StateOpen, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			rec, body := serveHealth(t, &HealthHandler{
				DB:      &fakeDB{},
				Breaker: fakeBreaker(tt.state),
			})

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.expected, body.Status)
			assert.Equal(t, tt.state.String(), body.Checks["circuit_breaker"].Details["state"])
		})
	}
}

func TestHealthHandler_CacheControl(t *testing.T) {
	rec, _ := serveHealth(t, &HealthHandler{DB: &fakeDB{}})

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		code     int
		expected string
	}{
		{"ready", nil, http.StatusOK, "ready"},
		{"not ready", sql.ErrConnDone, http.StatusServiceUnavailable, "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			mock.ExpectPing().WillReturnError(tt.pingErr)

			rec := httptest.NewRecorder()
			(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.expected, rec.Body.String())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReadyHandler_NoDatabaseConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	(&ReadyHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "database not configured")
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}
