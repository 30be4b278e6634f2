// Package db owns the shared connection pool to the relational store.
//
// Every statement goes through a circuit breaker, is timed into the
// db_query_duration_seconds histogram and runs inside a tracing span.
// Callers write "?" placeholders; the pool rebinds them for the driver.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"article-inventory/internal/observability/metrics"
	"article-inventory/internal/observability/tracing"
	"article-inventory/internal/resilience/circuitbreaker"
)

const probeTimeout = 5 * time.Second

// ErrPoolClosed is returned for work submitted after Shutdown.
var ErrPoolClosed = errors.New("db: pool is closed")

// Result is the outcome of a mutating statement.
type Result struct {
	RowsAffected int64
	// InsertedID is the generated id when the driver reports one, else 0.
	InsertedID int64
}

// Pool is a fixed-size pool of store connections.
type Pool struct {
	db      *sqlx.DB
	dialect dialect
	breaker *circuitbreaker.CircuitBreaker
	logger  *slog.Logger

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

// Open validates cfg, configures the pool and runs one connectivity probe.
// A failed probe is logged and does not fail Open.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Pool, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	sqlDB, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	size := cfg.poolSize()
	sqlDB.SetMaxOpenConns(size)
	sqlDB.SetMaxIdleConns(size)

	p := newPool(sqlDB, logger)
	logger.Info("database pool configured",
		slog.String("driver", cfg.Driver),
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.Int("pool_size", size))

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := sqlDB.PingContext(probeCtx); err != nil {
		logger.Error("database connectivity probe failed", slog.Any("error", err))
	} else {
		logger.Info("database connectivity probe succeeded")
	}

	return p, nil
}

// NewPool wraps an already opened *sql.DB. driver selects the dialect.
func NewPool(sqlDB *sql.DB, driver string, logger *slog.Logger) *Pool {
	return newPool(sqlx.NewDb(sqlDB, driver), logger)
}

func newPool(sqlDB *sqlx.DB, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		db:      sqlDB,
		dialect: dialectFor(sqlDB.DriverName()),
		breaker: circuitbreaker.New(circuitbreaker.DatabaseConfig()),
		logger:  logger,
	}
}

// LikeOperator is the case-insensitive substring operator of the dialect.
func (p *Pool) LikeOperator() string {
	return p.dialect.like
}

// DriverName returns the database/sql driver in use.
func (p *Pool) DriverName() string {
	return p.db.DriverName()
}

// Stats returns database/sql pool statistics.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

func (p *Pool) begin() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.inflight.Add(1)
	return nil
}

// run executes fn as one tracked unit of work named op.
func (p *Pool) run(ctx context.Context, op, stmt string, fn func(ctx context.Context) error) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.inflight.Done()
	return p.observe(ctx, op, stmt, fn)
}

// observe runs fn through the breaker inside a span and records its duration.
func (p *Pool) observe(ctx context.Context, op, stmt string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, "db."+op,
		attribute.String("db.system", p.dialect.name),
		attribute.String("db.statement", stmt),
	)

	start := time.Now()
	_, err := circuitbreaker.Do(p.breaker, func() (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	metrics.RecordDBQuery(op, time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		tracing.EndSpan(span, nil)
	} else {
		tracing.EndSpan(span, err)
	}
	return err
}

// queryer is the statement surface shared by *sqlx.DB and *sqlx.Conn.
type queryer interface {
	sqlx.ExecerContext
	sqlx.QueryerContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	Rebind(query string) string
}

func execOn(ctx context.Context, q queryer, d dialect, stmt string, args []any) (Result, error) {
	var res Result
	r, err := q.ExecContext(ctx, q.Rebind(stmt), args...)
	if err != nil {
		return res, err
	}
	err = fillResult(r, d, &res)
	return res, err
}

func insertOn(ctx context.Context, q queryer, d dialect, stmt string, args []any) (int64, error) {
	if d.returning {
		var id int64
		err := q.QueryRowxContext(ctx, q.Rebind(stmt+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := execOn(ctx, q, d, stmt, args)
	return res.InsertedID, err
}

// Exec runs a mutating statement.
func (p *Pool) Exec(ctx context.Context, stmt string, args ...any) (Result, error) {
	var res Result
	err := p.run(ctx, "exec", stmt, func(ctx context.Context) (err error) {
		res, err = execOn(ctx, p.db, p.dialect, stmt, args)
		return err
	})
	return res, err
}

func fillResult(r sql.Result, d dialect, res *Result) error {
	n, err := r.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	res.RowsAffected = n
	if !d.returning {
		// Not every statement generates an id.
		if id, err := r.LastInsertId(); err == nil {
			res.InsertedID = id
		}
	}
	return nil
}

// Query scans all rows into dest, which must be a pointer to a slice.
func (p *Pool) Query(ctx context.Context, dest any, stmt string, args ...any) error {
	return p.run(ctx, "query", stmt, func(ctx context.Context) error {
		return p.db.SelectContext(ctx, dest, p.db.Rebind(stmt), args...)
	})
}

// QueryRow scans a single row into dest. It returns sql.ErrNoRows when the
// statement matches nothing.
func (p *Pool) QueryRow(ctx context.Context, dest any, stmt string, args ...any) error {
	return p.run(ctx, "query_row", stmt, func(ctx context.Context) error {
		return p.db.GetContext(ctx, dest, p.db.Rebind(stmt), args...)
	})
}

// Insert runs an INSERT and returns the generated id. On postgres the
// statement is extended with RETURNING id. A zero id means the store did not
// report one.
func (p *Pool) Insert(ctx context.Context, stmt string, args ...any) (int64, error) {
	var id int64
	err := p.run(ctx, "insert", stmt, func(ctx context.Context) (err error) {
		id, err = insertOn(ctx, p.db, p.dialect, stmt, args)
		return err
	})
	return id, err
}

// Breaker exposes the circuit breaker guarding every statement.
func (p *Pool) Breaker() *circuitbreaker.CircuitBreaker {
	return p.breaker
}

// Ping verifies a connection can be established.
func (p *Pool) Ping(ctx context.Context) error {
	return p.run(ctx, "ping", "", p.db.PingContext)
}

// Acquire reserves a connection, blocking while all of them are in use.
// The connection counts as in-flight work until Release.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}
	c, err := p.db.Connx(ctx)
	if err != nil {
		p.inflight.Done()
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &Conn{conn: c, pool: p}, nil
}

// Shutdown stops accepting work, waits for in-flight work to finish or ctx to
// expire, then closes every connection. Calling it again is a no-op.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.inflight.Wait()
		close(drained)
	}()

	var waitErr error
	select {
	case <-drained:
	case <-ctx.Done():
		waitErr = ctx.Err()
		p.logger.Warn("database pool shutdown before in-flight work drained", slog.Any("error", waitErr))
	}

	if err := p.db.Close(); err != nil {
		return fmt.Errorf("close pool: %w", err)
	}
	p.logger.Info("database pool closed")
	return waitErr
}

// Conn is a single reserved connection.
type Conn struct {
	conn *sqlx.Conn
	pool *Pool
	once sync.Once
}

// Exec runs a mutating statement on this connection.
func (c *Conn) Exec(ctx context.Context, stmt string, args ...any) (Result, error) {
	var res Result
	err := c.pool.observe(ctx, "exec", stmt, func(ctx context.Context) (err error) {
		res, err = execOn(ctx, c.conn, c.pool.dialect, stmt, args)
		return err
	})
	return res, err
}

// Insert runs an INSERT on this connection and returns the generated id.
func (c *Conn) Insert(ctx context.Context, stmt string, args ...any) (int64, error) {
	var id int64
	err := c.pool.observe(ctx, "insert", stmt, func(ctx context.Context) (err error) {
		id, err = insertOn(ctx, c.conn, c.pool.dialect, stmt, args)
		return err
	})
	return id, err
}

// QueryRow scans a single row into dest on this connection.
func (c *Conn) QueryRow(ctx context.Context, dest any, stmt string, args ...any) error {
	return c.pool.observe(ctx, "query_row", stmt, func(ctx context.Context) error {
		return c.conn.GetContext(ctx, dest, c.conn.Rebind(stmt), args...)
	})
}

// Release returns the connection to the pool. Only the first call has an effect.
func (c *Conn) Release() {
	c.once.Do(func() {
		if err := c.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			c.pool.logger.Warn("release connection", slog.Any("error", err))
		}
		c.pool.inflight.Done()
	})
}
