package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"article-inventory/internal/observability/metrics"
)

// DefaultMonitorSchedule is used when no schedule is configured.
const DefaultMonitorSchedule = "@every 30s"

// Monitor periodically probes the pool and publishes its statistics.
type Monitor struct {
	cron   *cron.Cron
	pool   *Pool
	logger *slog.Logger
}

// StartMonitor schedules the pool probe with a cron spec and starts it.
func StartMonitor(pool *Pool, schedule string, logger *slog.Logger) (*Monitor, error) {
	if schedule == "" {
		schedule = DefaultMonitorSchedule
	}

	m := &Monitor{
		cron:   cron.New(),
		pool:   pool,
		logger: logger,
	}
	if _, err := m.cron.AddFunc(schedule, m.Check); err != nil {
		return nil, fmt.Errorf("schedule pool monitor %q: %w", schedule, err)
	}
	m.cron.Start()

	logger.Info("database pool monitor started", slog.String("schedule", schedule))
	return m, nil
}

// Check pings the pool once and publishes the result and pool statistics.
func (m *Monitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := m.pool.Ping(ctx)
	metrics.SetDBUp(err == nil)
	stats := m.pool.Stats()
	metrics.UpdateDBPoolStats(stats)

	if err != nil {
		m.logger.Warn("database pool probe failed", slog.Any("error", err))
		return
	}
	m.logger.Debug("database pool probe",
		slog.Int("open", stats.OpenConnections),
		slog.Int("in_use", stats.InUse),
		slog.Int("idle", stats.Idle),
		slog.Int64("wait_count", stats.WaitCount),
		slog.Duration("wait_duration", stats.WaitDuration))
}

// Stop stops scheduling and waits for a running probe, bounded by ctx.
func (m *Monitor) Stop(ctx context.Context) error {
	done := m.cron.Stop()
	select {
	case <-done.Done():
		m.logger.Info("database pool monitor stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
