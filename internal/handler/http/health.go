package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/resilience/circuitbreaker"
)

// RootMessage is the plain-text banner served at GET /.
const RootMessage = "Article management API is running!"

// RootHandler answers GET / with RootMessage.
func RootHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(RootMessage))
}

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Version   string                 `json:"version,omitempty"`
	Checks    map[string]CheckStatus `json:"checks,omitempty"`
}

// CheckStatus is the outcome of one readiness check.
type CheckStatus struct {
	Status  string         `json:"status"` // healthy, degraded or unhealthy
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler is the liveness probe. It never touches the database.
type HealthHandler struct {
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
	})
}

// PoolChecker is the part of the connection pool the readiness probe uses.
type PoolChecker interface {
	Ping(ctx context.Context) error
	Stats() sql.DBStats
	Breaker() *circuitbreaker.CircuitBreaker
}

// ReadyHandler pings the pool and reports its statistics and circuit breaker
// state. It answers 503 when the ping fails or the breaker is open; a busy
// pool or a half-open breaker is reported as degraded but ready.
type ReadyHandler struct {
	Pool    PoolChecker
	Version string
	Timeout time.Duration
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := map[string]CheckStatus{"database": h.checkDatabase(ctx)}
	if h.Pool != nil {
		if cb := h.Pool.Breaker(); cb != nil {
			checks["circuit_breaker"] = checkBreaker(cb)
		}
	}

	status, code := "healthy", http.StatusOK
	for _, check := range checks {
		if check.Status == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
		Checks:    checks,
	})
}

func checkBreaker(cb *circuitbreaker.CircuitBreaker) CheckStatus {
	details := map[string]any{"name": cb.Name(), "state": cb.State().String()}
	switch {
	case cb.IsOpen():
		return CheckStatus{Status: "unhealthy", Message: "circuit breaker open", Details: details}
	case cb.State() == gobreaker.StateHalfOpen:
		return CheckStatus{Status: "degraded", Message: "circuit breaker half-open", Details: details}
	default:
		return CheckStatus{Status: "healthy", Details: details}
	}
}

func (h *ReadyHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.Pool == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if err := h.Pool.Ping(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}

	stats := h.Pool.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "degraded", Message: "pool size not configured", Details: details}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80 {
		return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}
