// Package resilience groups the fault tolerance helpers used around the store.
//
// The package supports:
//   - Circuit breakers that stop hammering an unavailable database
//   - Retry with exponential backoff and jitter for startup connectivity
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DatabaseConfig())
//	n, err := circuitbreaker.Do(cb, func() (int64, error) {
//	    return countRows(ctx)
//	})
//
//	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
//	    return pool.Ping(ctx)
//	})
package resilience
