package repository

import (
	"database/sql"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// ErrNotFound is the batch sentinel, so callers can test lookups and batch
// failures against a single value.
var ErrNotFound = batch.ErrNotFound

// auditScan receives the three audit columns. Timestamps arrive as text
// from SQLite and as time.Time from Postgres.
type auditScan struct {
	created  any
	modified any
	editor   sql.NullString
}

func (a *auditScan) dest() []any {
	return []any{&a.created, &a.modified, &a.editor}
}

func (a *auditScan) audit(d db.Dialect) (domain.Audit, error) {
	created, err := d.ParseTime(a.created)
	if err != nil {
		return domain.Audit{}, fmt.Errorf("parsing created: %w", err)
	}
	modified, err := d.ParseTime(a.modified)
	if err != nil {
		return domain.Audit{}, fmt.Errorf("parsing modified: %w", err)
	}
	return domain.Audit{Created: created, Modified: modified, EditorEmail: a.editor.String}, nil
}

const auditColumns = "created, modified, editor_email"

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func float64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// intToBool converts a stored integer flag to a Go bool.
func intToBool(i int64) bool {
	return i != 0
}

func flagPtr(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := intToBool(v.Int64)
	return &b
}
