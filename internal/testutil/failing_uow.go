package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects an error on the Nth write
// within a transaction. This enables rollback integration tests by
// simulating failures at precise points in multi-write operations.
//
// ExecContext calls and INSERT ... RETURNING queries are counted starting
// at 1. Other reads pass through normally.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// QueryRowContext counts INSERTs that return their id. A failing one is
// turned into a query the store rejects, since *sql.Row cannot be built
// with a custom error.
func (f *failOnNthExec) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if isInsert(query) && f.count.Add(1) == f.failOn {
		return f.DBTX.QueryRowContext(ctx, "SELECT injected_failure FROM no_such_table_for_injected_failure")
	}
	return f.DBTX.QueryRowContext(ctx, query, args...)
}

func isInsert(query string) bool {
	for i := 0; i < len(query); i++ {
		switch query[i] {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return len(query)-i >= 6 && (query[i:i+6] == "INSERT" || query[i:i+6] == "insert")
	}
	return false
}
