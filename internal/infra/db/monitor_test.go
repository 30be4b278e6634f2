package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-inventory/internal/infra/db"
	"article-inventory/internal/observability/metrics"
)

func TestMonitor_Check(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	pool := db.NewPool(sqlDB, db.DriverMySQL, discardLogger())

	m, err := db.StartMonitor(pool, "@every 1h", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Stop(context.Background()) })

	mock.ExpectPing()
	m.Check()
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DBPoolUp))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	m.Check()
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.DBPoolUp))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStartMonitor_InvalidSchedule(t *testing.T) {
	pool, _ := newMockPool(t, db.DriverMySQL)

	_, err := db.StartMonitor(pool, "every now and then", discardLogger())
	assert.Error(t, err)
}

func TestMonitor_Stop(t *testing.T) {
	pool, _ := newMockPool(t, db.DriverMySQL)

	m, err := db.StartMonitor(pool, "", discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, m.Stop(ctx))
}
