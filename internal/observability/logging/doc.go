// Package logging provides structured logging utilities with context propagation.
//
// Key features:
//   - JSON (default) and text output formats
//   - Request ID propagation
//
// Example usage:
//
//	logger := logging.New(os.Stdout, "debug", "json")
//	logging.WithRequestID(ctx, logger).Info("article created", slog.Int64("id", id))
package logging
