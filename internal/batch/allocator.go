package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

// IDAllocator hands out ids for manual-mode tables. It must run inside the
// transaction that will insert the rows: the table lock it takes is only
// released when that transaction commits or rolls back, so no concurrent
// allocator can read the same maximum.
type IDAllocator struct {
	dialect db.Dialect
}

// NewIDAllocator creates an allocator for the given dialect.
func NewIDAllocator(dialect db.Dialect) *IDAllocator {
	return &IDAllocator{dialect: dialect}
}

// Lock takes the table's allocation lock for the rest of the transaction.
// Taking it again in the same transaction is harmless.
func (a *IDAllocator) Lock(ctx context.Context, tx db.DBTX, table string) error {
	if !identRe.MatchString(table) {
		return newError(ErrPersistence, "lock", table, -1, fmt.Errorf("invalid table name %q", table))
	}
	if err := a.dialect.LockTable(ctx, tx, table); err != nil {
		return a.classify("lock", table, err)
	}
	return nil
}

// Next returns count ids following the current maximum. The caller must
// already hold the lock.
func (a *IDAllocator) Next(ctx context.Context, tx db.DBTX, table string, count int) ([]int64, error) {
	if count <= 0 {
		return nil, nil
	}
	var current int64
	query := fmt.Sprintf(`SELECT COALESCE(MAX(id), 0) FROM %s`, db.QuoteIdent(table))
	if err := tx.QueryRowContext(ctx, query).Scan(&current); err != nil {
		return nil, a.classify("allocate", table, fmt.Errorf("reading max id: %w", err))
	}
	ids := make([]int64, count)
	for i := range ids {
		ids[i] = current + int64(i) + 1
	}
	return ids, nil
}

// Allocate locks table and reserves count consecutive ids.
func (a *IDAllocator) Allocate(ctx context.Context, tx db.DBTX, table string, count int) ([]int64, error) {
	if count <= 0 {
		return nil, nil
	}
	if err := a.Lock(ctx, tx, table); err != nil {
		return nil, err
	}
	return a.Next(ctx, tx, table, count)
}

func (a *IDAllocator) classify(stage, table string, err error) error {
	if a.dialect.IsContention(err) || errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrContention, stage, table, -1, err)
	}
	return newError(ErrPersistence, stage, table, -1, err)
}
