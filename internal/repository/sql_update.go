package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// SQLUpdateRepo reads progress updates.
type SQLUpdateRepo struct {
	db db.DBTX
	d  db.Dialect
}

// NewSQLUpdateRepo creates a new SQLUpdateRepo.
func NewSQLUpdateRepo(conn db.DBTX, d db.Dialect) *SQLUpdateRepo {
	return &SQLUpdateRepo{db: conn, d: d}
}

// ListByUseCase returns updates newest first.
func (r *SQLUpdateRepo) ListByUseCase(ctx context.Context, useCaseID int64) ([]*domain.ProgressUpdate, error) {
	query := r.d.Rebind(`SELECT id, usecaseid, meaningfulupdate, roleid, usecasephaseid, usecasestatusid, ` + auditColumns + `
		FROM updates WHERE usecaseid = ? ORDER BY id DESC`)
	rows, err := r.db.QueryContext(ctx, query, useCaseID)
	if err != nil {
		return nil, fmt.Errorf("listing updates for use case %d: %w", useCaseID, err)
	}
	defer rows.Close()

	var out []*domain.ProgressUpdate
	for rows.Next() {
		var (
			u                   domain.ProgressUpdate
			role, phase, status sql.NullInt64
			a                   auditScan
		)
		dest := append([]any{&u.ID, &u.UseCaseID, &u.Text, &role, &phase, &status}, a.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning update: %w", err)
		}
		if u.Audit, err = a.audit(r.d); err != nil {
			return nil, fmt.Errorf("update %d: %w", u.ID, err)
		}
		u.RoleID, u.PhaseID, u.StatusID = int64Ptr(role), int64Ptr(phase), int64Ptr(status)
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating updates: %w", err)
	}
	return out, nil
}
