package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SalonBookingService/pkg/metrics"
)

// DefaultStatsInterval how often connection pool gauges are refreshed.
const DefaultStatsInterval = 15 * time.Second

// DB wraps *sql.DB and records query counts and latency.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	service string
}

// WrapWithDefault wraps db and starts the pool stats collector, which runs until stopCh is closed.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, service string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, metrics: m, service: service}
	go wrapped.collectStats(DefaultStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx opens a transaction whose queries are measured too.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{tx: tx, parent: d}, nil
}

// RecordTransaction counts a finished transaction.
func (d *DB) RecordTransaction(isolation string, err error) {
	status := "commit"
	if err != nil {
		status = "rollback"
	}
	d.metrics.DBTransactionsTotal.WithLabelValues(d.service, isolation, status).Inc()
}

// RecordRetry counts a retried serializable transaction.
func (d *DB) RecordRetry() {
	d.metrics.DBTransactionRetries.WithLabelValues(d.service).Inc()
}

func (d *DB) observe(query string, start time.Time, err error) {
	op := operation(query)
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	d.metrics.DBQueriesTotal.WithLabelValues(d.service, op, status).Inc()
	d.metrics.DBQueryDuration.WithLabelValues(d.service, op).Observe(time.Since(start).Seconds())
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.WithLabelValues(d.service).Set(float64(stats.OpenConnections))
			d.metrics.DBInUseConnections.WithLabelValues(d.service).Set(float64(stats.InUse))
			d.metrics.DBIdleConnections.WithLabelValues(d.service).Set(float64(stats.Idle))
			d.metrics.DBWaitCount.WithLabelValues(d.service).Set(float64(stats.WaitCount))
		}
	}
}

// SqlTxWrapper adapts *sql.Tx to TxExecutor and keeps measuring queries.
type SqlTxWrapper struct {
	tx     *sql.Tx
	parent *DB
}

// NewSqlTxWrapper wraps a plain transaction without metrics.
func NewSqlTxWrapper(tx *sql.Tx) *SqlTxWrapper {
	return &SqlTxWrapper{tx: tx}
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := w.tx.ExecContext(ctx, query, args...)
	if w.parent != nil {
		w.parent.observe(query, start, err)
	}
	return res, err
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := w.tx.QueryContext(ctx, query, args...)
	if w.parent != nil {
		w.parent.observe(query, start, err)
	}
	return rows, err
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := w.tx.QueryRowContext(ctx, query, args...)
	if w.parent != nil {
		w.parent.observe(query, start, row.Err())
	}
	return row
}

func (w *SqlTxWrapper) Commit() error {
	return w.tx.Commit()
}

func (w *SqlTxWrapper) Rollback() error {
	return w.tx.Rollback()
}

// operation extracts the leading SQL verb for the metric label.
func operation(query string) string {
	q := strings.TrimSpace(query)
	if i := strings.IndexAny(q, " \n\t"); i > 0 {
		q = q[:i]
	}
	switch op := strings.ToLower(q); op {
	case "select", "insert", "update", "delete", "with":
		return op
	default:
		return "other"
	}
}
