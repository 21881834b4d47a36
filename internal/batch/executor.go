package batch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

// PrepareFunc runs inside the batch transaction before planning. It may
// fill payload values that depend on other rows (lookups, snapshots of the
// parent). Errors built with NotFound or Validationf keep their kind.
type PrepareFunc func(ctx context.Context, tx db.DBTX, items []Item) error

// Request is one batch submission.
type Request struct {
	ParentID int64
	Items    []Item
	// Editor is the caller's identity; empty means "not supplied".
	Editor  string
	Prepare PrepareFunc
}

// ItemResult echoes one item after commit.
type ItemResult struct {
	ID    int64
	Op    OpKind
	Audit Audit
	// Payload holds the values written, including those set by Prepare.
	Payload []any
	Key     []any
}

// Result is returned only for committed batches; Items follow submission order.
type Result struct {
	Mode  Mode
	Items []ItemResult
}

// Executor runs the whole upsert protocol for one entity as a single unit
// of work.
type Executor struct {
	entity   Entity
	dialect  db.Dialect
	uow      db.UnitOfWork
	resolver *SchemaModeResolver
	alloc    *IDAllocator
	stmts    statements
	timeout  time.Duration
	now      func() time.Time
	observer Observer
}

// Option configures an Executor.
type Option func(*Executor)

// WithResolver shares a schema-mode cache between executors.
func WithResolver(r *SchemaModeResolver) Option {
	return func(e *Executor) { e.resolver = r }
}

// WithUnitOfWork replaces the transaction runner, e.g. with a fault
// injecting one in tests.
func WithUnitOfWork(uow db.UnitOfWork) Option {
	return func(e *Executor) { e.uow = uow }
}

// WithTimeout bounds each transaction. A deadline already on the caller's
// context still applies if it is earlier.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithClock overrides the time source used for audit stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// WithObserver reports every batch outcome.
func WithObserver(o Observer) Option {
	return func(e *Executor) { e.observer = o }
}

// NewExecutor checks the entity mapping and prepares its statements.
func NewExecutor(store *db.Store, entity Entity, opts ...Option) (*Executor, error) {
	if err := entity.Check(); err != nil {
		return nil, err
	}
	e := &Executor{
		entity:   entity,
		dialect:  store.Dialect,
		uow:      store.UnitOfWork(),
		now:      time.Now,
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.resolver == nil {
		e.resolver = NewSchemaModeResolver(store.Dialect)
	}
	e.alloc = NewIDAllocator(store.Dialect)
	e.stmts = buildStatements(entity, store.Dialect)
	return e, nil
}

type execStats struct {
	mode    Mode
	inserts int
	updates int
}

// Execute validates, plans and writes the batch atomically. On any error
// nothing from the batch is left in the store.
func (e *Executor) Execute(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	var stats execStats
	res, err := e.execute(ctx, req, &stats)
	e.observer.ObserveBatch(ctx, Event{
		Entity:   e.entity.Name,
		Table:    e.entity.Table,
		Mode:     stats.mode,
		Items:    len(req.Items),
		Inserts:  stats.inserts,
		Updates:  stats.updates,
		Duration: time.Since(start),
		Err:      err,
	})
	return res, err
}

func (e *Executor) execute(ctx context.Context, req Request, stats *execStats) (*Result, error) {
	if err := e.entity.ValidateItems(req.Items); err != nil {
		return nil, e.withTable(err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	items := make([]Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = Item{
			ID:             it.ID,
			Key:            append([]any(nil), it.Key...),
			Payload:        append([]any(nil), it.Payload...),
			EditorFallback: it.EditorFallback,
		}
	}

	var res *Result
	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		res, err = e.run(ctx, tx, req, items, stats)
		return err
	})
	if err != nil {
		return nil, e.classify("transaction", -1, err)
	}
	return res, nil
}

func (e *Executor) run(ctx context.Context, tx db.DBTX, req Request, items []Item, stats *execStats) (*Result, error) {
	table := e.entity.Table

	if e.stmts.parentExists != "" {
		var one int
		err := tx.QueryRowContext(ctx, e.stmts.parentExists, req.ParentID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, newError(ErrNotFound, "parent", table, -1, fmt.Errorf("%s %d", e.entity.ParentTable, req.ParentID))
		}
		if err != nil {
			return nil, e.classify("parent", -1, err)
		}
	}

	mode, err := e.resolver.Resolve(ctx, tx, table)
	if err != nil {
		return nil, err
	}
	stats.mode = mode

	// Lock before the snapshot so the rows we classify against cannot gain
	// a concurrent insert until we commit.
	if mode == ModeManual {
		if err := e.alloc.Lock(ctx, tx, table); err != nil {
			return nil, err
		}
	}

	if req.Prepare != nil {
		if err := req.Prepare(ctx, tx, items); err != nil {
			return nil, e.classify("prepare", -1, err)
		}
		if err := e.entity.ValidateItems(items); err != nil {
			return nil, e.withTable(err)
		}
	}

	var snap *Snapshot
	if !e.entity.AppendOnly {
		snap, err = e.loadSnapshot(ctx, tx, req.ParentID)
		if err != nil {
			return nil, err
		}
	}

	now := e.now().UTC().Truncate(time.Microsecond)
	ops, err := Plan(e.entity, items, snap, req.Editor, now)
	if err != nil {
		return nil, err
	}

	inserts := CountInserts(ops)
	stats.inserts = inserts
	stats.updates = len(ops) - inserts

	if mode == ModeManual && inserts > 0 {
		ids, err := e.alloc.Next(ctx, tx, table, inserts)
		if err != nil {
			return nil, err
		}
		n := 0
		for i := range ops {
			if ops[i].Kind == OpInsert {
				ops[i].ID = ids[n]
				n++
			}
		}
	}

	for i := range ops {
		if err := e.apply(ctx, tx, mode, req.ParentID, items, ops, i); err != nil {
			return nil, err
		}
	}

	res := &Result{Mode: mode, Items: make([]ItemResult, len(ops))}
	for _, op := range ops {
		it := items[op.Item]
		res.Items[op.Item] = ItemResult{ID: op.ID, Op: op.Kind, Audit: op.Audit, Key: it.Key, Payload: it.Payload}
	}
	return res, nil
}

func (e *Executor) apply(ctx context.Context, tx db.DBTX, mode Mode, parentID int64, items []Item, ops []Op, i int) error {
	op := &ops[i]
	it := items[op.Item]

	switch op.Kind {
	case OpInsert:
		args := insertArgs(e.dialect, parentID, it, op.Audit)
		if mode == ModeManual {
			args = append([]any{op.ID}, args...)
			if _, err := tx.ExecContext(ctx, e.stmts.insertWithID, args...); err != nil {
				return e.classify("insert", op.Item, err)
			}
			return nil
		}
		if err := tx.QueryRowContext(ctx, e.stmts.insertReturningID, args...).Scan(&op.ID); err != nil {
			return e.classify("insert", op.Item, err)
		}
		return nil

	case OpUpdate:
		if op.Ref >= 0 {
			op.ID = ops[op.Ref].ID
		}
		r, err := tx.ExecContext(ctx, e.stmts.updateByID, updateArgs(e.dialect, op.ID, it, op.Audit)...)
		if err != nil {
			return e.classify("update", op.Item, err)
		}
		if n, err := r.RowsAffected(); err == nil && n == 0 {
			return newError(ErrNotFound, "update", e.entity.Table, op.Item, fmt.Errorf("%s %d vanished during the batch", e.entity.Name, op.ID))
		}
		return nil
	}
	return newError(ErrPersistence, "apply", e.entity.Table, op.Item, fmt.Errorf("unknown op kind %d", op.Kind))
}

func (e *Executor) loadSnapshot(ctx context.Context, tx db.DBTX, parentID int64) (*Snapshot, error) {
	rows, err := tx.QueryContext(ctx, e.stmts.snapshot, parentID)
	if err != nil {
		return nil, e.classify("snapshot", -1, err)
	}
	defer rows.Close()

	nKeys := len(e.entity.KeyColumns)
	var existing []ExistingRow
	for rows.Next() {
		var (
			r                 ExistingRow
			created, modified any
			editor            sql.NullString
		)
		keys := make([]any, nKeys)
		dest := make([]any, 0, nKeys+4)
		dest = append(dest, &r.ID)
		for k := range keys {
			dest = append(dest, &keys[k])
		}
		dest = append(dest, &created, &modified, &editor)
		if err := rows.Scan(dest...); err != nil {
			return nil, e.classify("snapshot", -1, fmt.Errorf("scanning existing row: %w", err))
		}
		if r.Audit.Created, err = e.dialect.ParseTime(created); err != nil {
			return nil, e.classify("snapshot", -1, err)
		}
		if r.Audit.Modified, err = e.dialect.ParseTime(modified); err != nil {
			return nil, e.classify("snapshot", -1, err)
		}
		r.Audit.EditorEmail = editor.String
		r.Key = keys
		existing = append(existing, r)
	}
	if err := rows.Err(); err != nil {
		return nil, e.classify("snapshot", -1, fmt.Errorf("iterating existing rows: %w", err))
	}
	return NewSnapshot(existing), nil
}

// classify keeps errors that already carry a kind and sorts everything else
// into contention or persistence. An expired transaction deadline counts as
// contention: the batch was rolled back and may be retried.
func (e *Executor) classify(stage string, item int, err error) error {
	var be *Error
	if errors.As(err, &be) {
		if be.Table == "" {
			be.Table = e.entity.Table
		}
		return be
	}
	if e.dialect.IsContention(err) || errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrContention, stage, e.entity.Table, item, err)
	}
	return newError(ErrPersistence, stage, e.entity.Table, item, err)
}

func (e *Executor) withTable(err error) error {
	var be *Error
	if errors.As(err, &be) && be.Table == "" {
		be.Table = e.entity.Table
	}
	return err
}
