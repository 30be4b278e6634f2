// Package tracing provides OpenTelemetry tracing for HTTP requests and
// database calls. Spans are created through the global tracer provider, which
// the process entry point installs with NewProvider.
package tracing
