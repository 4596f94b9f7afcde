package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SalonBookingService/pkg/dbmetrics"
)

// MaxSerializableAttempts bounds retries of a serializable transaction.
const MaxSerializableAttempts = 3

// SQLSTATE codes that mean "run the whole transaction again".
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// ErrTransaction wraps begin/commit failures.
var ErrTransaction = errors.New("txmanager: transaction error")

// TransactionManager runs callbacks inside transactions opened on a metrics-wrapped DB.
// The transaction travels in the context; repositories pick it up via dbmetrics.GetExecutor.
type TransactionManager struct {
	db *dbmetrics.DB
}

func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do runs fn with the default isolation level.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.run(ctx, &sql.TxOptions{}, fn)
	m.db.RecordTransaction("read_committed", err)
	return err
}

// DoSerializable runs fn with SERIALIZABLE isolation and retries serialization failures.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	err := Retry(ctx, func() error {
		return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
	}, m.db.RecordRetry)
	m.db.RecordTransaction("serializable", err)
	return err
}

// DoReadOnly runs fn in a REPEATABLE READ read-only transaction, so every read sees one snapshot.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
	m.db.RecordTransaction("read_only", err)
	return err
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}
	return Finish(tx, fn(dbmetrics.WithTx(ctx, tx)))
}

// Retry runs attempt up to MaxSerializableAttempts times while it fails with a
// retryable error and ctx is alive. onRetry, if set, is called before each rerun.
func Retry(ctx context.Context, attempt func() error, onRetry func()) error {
	var err error
	for i := 1; i <= MaxSerializableAttempts; i++ {
		err = attempt()
		if !IsRetryable(err) || ctx.Err() != nil || i == MaxSerializableAttempts {
			break
		}
		if onRetry != nil {
			onRetry()
		}
	}
	return err
}

// Finish commits when fnErr is nil and rolls back otherwise.
func Finish(tx dbmetrics.TxExecutor, fnErr error) error {
	if fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	if err := tx.Commit(); err != nil {
		if IsRetryable(err) {
			return err
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}
	return nil
}

// IsRetryable reports whether err is a serialization failure or deadlock.
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}
