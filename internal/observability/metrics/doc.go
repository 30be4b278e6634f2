// Package metrics provides the Prometheus collectors of the service.
//
// This package centralizes:
//   - HTTP request metrics (duration, count, size, in-flight)
//   - Connection pool metrics (query latency, pool occupancy)
//   - Article and gate outcome counters
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	res, err := pool.Exec(ctx, stmt, args...)
//	metrics.RecordDBQuery("exec", time.Since(start), err)
package metrics
