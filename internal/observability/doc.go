// Package observability groups the logging, metrics and tracing infrastructure
// of the journal API.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus collectors and recorders
//   - tracing: OpenTelemetry tracer and HTTP middleware
//
// Example usage:
//
//	import (
//	    "journal-api/internal/observability/logging"
//	    "journal-api/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordJournalOperation("create", metrics.ResultSuccess)
//	}
package observability
