package metrics

import (
	"time"
)

// Operation results used as the "result" label.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordJournalOperation counts one journal service call.
func RecordJournalOperation(operation, result string) {
	JournalOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordDateFallback counts a malformed date that was replaced by "now".
func RecordDateFallback(field string) {
	DateFallbacksTotal.WithLabelValues(field).Inc()
}

// RecordTokenRequest counts a POST /auth/token attempt.
func RecordTokenRequest(success bool) {
	result := ResultSuccess
	if !success {
		result = "failure"
	}
	TokensIssuedTotal.WithLabelValues(result).Inc()
}

// UpdateJournalsTotal updates the total count of journals in the database.
// This gauge should be updated periodically to reflect the current state.
func UpdateJournalsTotal(count int64) {
	JournalsTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_journal", "insert_journal").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
