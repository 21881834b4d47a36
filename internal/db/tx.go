package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what repositories and batch stages run queries against: the pool
// for reads outside a batch, the open *sql.Tx inside one.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork runs fn inside one transaction. A nil return commits; any
// error or panic rolls everything back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// TxOption adjusts the transactions a SQLUnitOfWork begins.
type TxOption func(*sql.TxOptions)

// WithIsolation sets the isolation level of every transaction.
func WithIsolation(level sql.IsolationLevel) TxOption {
	return func(o *sql.TxOptions) { o.Isolation = level }
}

type SQLUnitOfWork struct {
	conn *sql.DB
	opts sql.TxOptions
}

func NewSQLUnitOfWork(conn *sql.DB, opts ...TxOption) *SQLUnitOfWork {
	u := &SQLUnitOfWork{conn: conn}
	for _, opt := range opts {
		opt(&u.opts)
	}
	return u
}

// UnitOfWork returns the transaction runner batches use on this store.
// Postgres runs at READ COMMITTED: id allocation is serialized by the table
// lock, and natural-key races are closed by the unique indexes.
func (s *Store) UnitOfWork() *SQLUnitOfWork {
	if s.Dialect.Name() == DriverPostgres {
		return NewSQLUnitOfWork(s.DB, WithIsolation(sql.LevelReadCommitted))
	}
	return NewSQLUnitOfWork(s.DB)
}

func (u *SQLUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.conn.BeginTx(ctx, &u.opts)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
