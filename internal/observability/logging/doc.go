// Package logging builds the process slog.Logger and carries request-scoped
// loggers through a context.
//
//	logger := logging.New(logging.Options{Level: "debug", Format: "text"})
//	ctx = logging.WithLogger(ctx, logging.WithRequestID(ctx, logger))
//	logging.FromContext(ctx).Info("journal created", slog.Int64("id", id))
package logging
