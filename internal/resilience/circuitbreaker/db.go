package circuitbreaker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sony/gobreaker"

	"project-board/internal/dbx"
	"project-board/internal/observability/metrics"
)

// DBConfig returns configuration tuned for the database.
// Opens after 5 consecutive failures, 30 second timeout.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// DBCircuitBreaker guards a database connection pool. It satisfies
// dbx.DBTX and dbx.Beginner, and Wrap extends the protection to transactions.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// NewDBCircuitBreaker wraps db with a breaker built from cfg.
func NewDBCircuitBreaker(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		cb: New(cfg),
		db: db,
	}
}

// QueryContext executes a query with circuit breaker protection.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return guardedQuery(dcb.cb, dcb.db, ctx, query, args...)
}

// ExecContext executes a statement with circuit breaker protection.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return guardedExec(dcb.cb, dcb.db, ctx, query, args...)
}

// QueryRowContext is not guarded: sql.Row defers its error until Scan.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return timedQueryRow(dcb.db, ctx, query, args...)
}

// BeginTx starts a transaction unless the circuit is open.
func (dcb *DBCircuitBreaker) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	result, err := dcb.cb.Execute(func() (interface{}, error) {
		return dcb.db.BeginTx(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Tx), nil
}

// PingContext checks the connection through the breaker.
func (dcb *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := dcb.cb.Execute(func() (interface{}, error) {
		return nil, dcb.db.PingContext(ctx)
	})
	return err
}

// Wrap returns a handle that runs the statements of tx through the same breaker.
func (dcb *DBCircuitBreaker) Wrap(tx dbx.DBTX) dbx.DBTX {
	return &guardedTx{cb: dcb.cb, tx: tx}
}

// State returns the current state of the circuit breaker.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}

// DB returns the underlying connection pool.
func (dcb *DBCircuitBreaker) DB() *sql.DB {
	return dcb.db
}

type guardedTx struct {
	cb *CircuitBreaker
	tx dbx.DBTX
}

func (g *guardedTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return guardedQuery(g.cb, g.tx, ctx, query, args...)
}

func (g *guardedTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return guardedExec(g.cb, g.tx, ctx, query, args...)
}

func (g *guardedTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return timedQueryRow(g.tx, ctx, query, args...)
}

// Operation labels for metrics.DBQueryDuration.
const (
	opQuery    = "query"
	opQueryRow = "query_row"
	opExec     = "exec"
)

func timedQueryRow(h dbx.DBTX, ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	defer func() { metrics.RecordDBQuery(opQueryRow, time.Since(start)) }()
	return h.QueryRowContext(ctx, query, args...)
}

func guardedQuery(cb *CircuitBreaker, h dbx.DBTX, ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		start := time.Now()
		defer func() { metrics.RecordDBQuery(opQuery, time.Since(start)) }()
		return h.QueryContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(*sql.Rows), nil
}

func guardedExec(cb *CircuitBreaker, h dbx.DBTX, ctx context.Context, query string, args ...any) (sql.Result, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		start := time.Now()
		defer func() { metrics.RecordDBQuery(opExec, time.Since(start)) }()
		return h.ExecContext(ctx, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return result.(sql.Result), nil
}
