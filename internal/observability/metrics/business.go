package metrics

import (
	"database/sql"
	"errors"
	"time"
)

// RecordDBQuery records the duration and outcome of a pool operation.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		status = "error"
	}
	DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// UpdateDBPoolStats publishes a snapshot of database/sql pool statistics.
func UpdateDBPoolStats(stats sql.DBStats) {
	DBPoolConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	DBPoolConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	DBPoolConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	DBPoolMaxOpen.Set(float64(stats.MaxOpenConnections))
	DBPoolWaitCount.Set(float64(stats.WaitCount))
	DBPoolWaitSeconds.Set(stats.WaitDuration.Seconds())
}

// SetDBUp records the result of the last connectivity probe.
func SetDBUp(up bool) {
	if up {
		DBPoolUp.Set(1)
		return
	}
	DBPoolUp.Set(0)
}

// RecordArticleCreated increments the created counter.
func RecordArticleCreated() {
	ArticlesCreatedTotal.Inc()
}

// RecordArticleUpdated increments the updated counter.
func RecordArticleUpdated() {
	ArticlesUpdatedTotal.Inc()
}

// RecordArticleDeactivated increments the deactivated counter.
func RecordArticleDeactivated() {
	ArticlesDeactivatedTotal.Inc()
}

// RecordAuthRejection counts an API key rejection.
func RecordAuthRejection(reason string) {
	AuthRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordValidationRejection counts a validation gate rejection.
func RecordValidationRejection(target string) {
	ValidationRejectionsTotal.WithLabelValues(target).Inc()
}
