// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size, in-flight)
//   - Business metrics (journal count, operations, date fallbacks, token issuance)
//   - Database query metrics
//
// All metrics are registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "journal-api/internal/observability/metrics"
//
//	func deleteJournal(ctx context.Context, id int64) error {
//	    start := time.Now()
//	    err := repo.Delete(ctx, id)
//	    metrics.RecordDBQuery("delete_journal", time.Since(start))
//	    return err
//	}
package metrics
