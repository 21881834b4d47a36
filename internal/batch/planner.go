package batch

import (
	"fmt"
	"time"
)

// OpKind is the write decided for one item.
type OpKind int

const (
	OpInsert OpKind = iota + 1
	OpUpdate
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Op is one planned statement. Ops are produced one per item, in
// submission order.
type Op struct {
	Kind OpKind
	Item int
	// ID is the target row for updates, and for inserts once an id has
	// been allocated or returned by the store.
	ID int64
	// Ref, when >= 0, is the index of an earlier insert in the same batch
	// whose row this update targets; its id is only known after it runs.
	Ref   int
	Audit Audit
}

// ExistingRow is what the snapshot keeps for a row already in the store.
type ExistingRow struct {
	ID    int64
	Key   []any
	Audit Audit
}

// Snapshot indexes the parent's existing rows by natural key and by id.
// When the store holds several rows for one key the highest id wins.
type Snapshot struct {
	byKey map[string]*ExistingRow
	byID  map[int64]*ExistingRow
}

// NewSnapshot builds a snapshot from rows in ascending id order.
func NewSnapshot(rows []ExistingRow) *Snapshot {
	s := &Snapshot{
		byKey: make(map[string]*ExistingRow, len(rows)),
		byID:  make(map[int64]*ExistingRow, len(rows)),
	}
	for i := range rows {
		r := &rows[i]
		s.byKey[naturalKey(r.Key)] = r
		s.byID[r.ID] = r
	}
	return s
}

// Len returns the number of distinct rows in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byID)
}

// planTarget tracks the latest known state of a row while planning, so a
// second item with the same key updates what the first one wrote.
type planTarget struct {
	id    int64
	ref   int
	audit Audit
}

// Plan classifies every item as an insert or an update and stamps its
// audit fields. Duplicate natural keys in one batch are planned in order:
// later items update the row written by earlier ones, so the last item wins.
func Plan(e Entity, items []Item, snap *Snapshot, editor string, now time.Time) ([]Op, error) {
	ops := make([]Op, 0, len(items))

	if e.AppendOnly {
		for i, it := range items {
			ops = append(ops, Op{Kind: OpInsert, Item: i, Ref: -1, Audit: Stamp(nil, editor, it.EditorFallback, now)})
		}
		return ops, nil
	}

	if snap == nil {
		snap = NewSnapshot(nil)
	}
	targets := make(map[string]*planTarget, snap.Len()+len(items))
	byID := make(map[int64]*planTarget, snap.Len())
	keyOfID := make(map[int64]string, snap.Len())
	for key, row := range snap.byKey {
		t := &planTarget{id: row.ID, ref: -1, audit: row.Audit}
		targets[key] = t
		byID[row.ID] = t
		keyOfID[row.ID] = key
	}

	for i, it := range items {
		key := naturalKey(it.Key)

		if it.ID != 0 {
			t, ok := byID[it.ID]
			if !ok {
				return nil, newError(ErrNotFound, "plan", e.Table, i, fmt.Errorf("%s %d does not belong to this parent", e.Name, it.ID))
			}
			old := keyOfID[it.ID]
			if other, taken := targets[key]; old != key && taken && other != t {
				return nil, newError(ErrValidation, "plan", e.Table, i,
					fmt.Errorf("%s %d cannot take key %v: another row of this parent already has it", e.Name, it.ID, it.Key))
			}
			audit := Stamp(&t.audit, editor, it.EditorFallback, now)
			t.audit = audit
			if old != key {
				if targets[old] == t {
					delete(targets, old)
				}
				targets[key] = t
				keyOfID[it.ID] = key
			}
			ops = append(ops, Op{Kind: OpUpdate, Item: i, ID: t.id, Ref: -1, Audit: audit})
			continue
		}

		if t, ok := targets[key]; ok {
			audit := Stamp(&t.audit, editor, it.EditorFallback, now)
			t.audit = audit
			ops = append(ops, Op{Kind: OpUpdate, Item: i, ID: t.id, Ref: t.ref, Audit: audit})
			continue
		}

		audit := Stamp(nil, editor, it.EditorFallback, now)
		targets[key] = &planTarget{ref: len(ops), audit: audit}
		ops = append(ops, Op{Kind: OpInsert, Item: i, Ref: -1, Audit: audit})
	}
	return ops, nil
}

// CountInserts returns how many ids a plan needs.
func CountInserts(ops []Op) int {
	n := 0
	for _, op := range ops {
		if op.Kind == OpInsert {
			n++
		}
	}
	return n
}
