// Package tracing provides OpenTelemetry tracing integration.
//
// Init installs an SDK tracer provider so that every request gets a real
// trace id (returned as X-Trace-Id and written to request logs). Spans are
// started by the HTTP middleware and by the journal service.
//
// Example usage:
//
//	import "journal-api/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.Init(1.0)
//	    defer shutdown(context.Background())
//	}
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "process-request")
//	    defer span.End()
//	}
package tracing
