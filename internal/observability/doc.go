// Package observability groups the logging, metrics and tracing support
// shared by the HTTP layer and the connection pool.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus collectors and recorders
//   - tracing: OpenTelemetry provider setup, HTTP middleware and span helpers
package observability
