package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/testutil"
)

func TestIDAllocator_SequentialFromMax(t *testing.T) {
	store := testutil.NewTestStore(t, "updates")
	parent := testutil.SeedUseCase(t, store, "alloc")
	alloc := NewIDAllocator(store.Dialect)
	uow := testutil.NewTestUoW(store)
	ctx := context.Background()

	var first, second []int64
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		first, err = alloc.Allocate(ctx, tx, "updates", 3)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, first)

	_, err = store.DB.ExecContext(ctx,
		`INSERT INTO updates (id, usecaseid, meaningfulupdate, created, modified) VALUES (10, ?, 'x', '', '')`, parent)
	require.NoError(t, err)

	err = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		second, err = alloc.Allocate(ctx, tx, "updates", 2)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, second)
}

func TestIDAllocator_ZeroCountTakesNoLock(t *testing.T) {
	alloc := NewIDAllocator(lockFailDialect{err: errors.New("must not lock")})
	ids, err := alloc.Allocate(context.Background(), nil, "updates", 0)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestIDAllocator_LockFailureIsClassified(t *testing.T) {
	busy := lockFailDialect{err: errors.New("database is locked"), contention: true}
	_, err := NewIDAllocator(busy).Allocate(context.Background(), nil, "plan", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContention)
	assert.True(t, IsRetryable(err))

	broken := lockFailDialect{err: errors.New("disk I/O error")}
	_, err = NewIDAllocator(broken).Allocate(context.Background(), nil, "plan", 1)
	assert.ErrorIs(t, err, ErrPersistence)

	timedOut := lockFailDialect{err: context.DeadlineExceeded}
	_, err = NewIDAllocator(timedOut).Allocate(context.Background(), nil, "plan", 1)
	assert.ErrorIs(t, err, ErrContention)
}

func TestIDAllocator_RejectsInvalidTable(t *testing.T) {
	_, err := NewIDAllocator(db.SQLite{}).Allocate(context.Background(), nil, "Plan Table", 1)
	assert.ErrorIs(t, err, ErrPersistence)
}

// lockFailDialect is a SQLite dialect whose table lock always fails.
type lockFailDialect struct {
	db.SQLite
	err        error
	contention bool
}

func (d lockFailDialect) LockTable(context.Context, db.DBTX, string) error { return d.err }

func (d lockFailDialect) IsContention(error) bool { return d.contention }
