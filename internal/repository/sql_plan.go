package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// SQLPlanRepo reads the plan table.
type SQLPlanRepo struct {
	db db.DBTX
	d  db.Dialect
}

// NewSQLPlanRepo creates a new SQLPlanRepo.
func NewSQLPlanRepo(conn db.DBTX, d db.Dialect) *SQLPlanRepo {
	return &SQLPlanRepo{db: conn, d: d}
}

// ListByUseCase returns the plan ordered by phase.
func (r *SQLPlanRepo) ListByUseCase(ctx context.Context, useCaseID int64) ([]*domain.PlanEntry, error) {
	query := r.d.Rebind(`SELECT id, usecaseid, usecasephaseid, startdate, enddate, ` + auditColumns + `
		FROM "plan" WHERE usecaseid = ? ORDER BY usecasephaseid, id`)
	rows, err := r.db.QueryContext(ctx, query, useCaseID)
	if err != nil {
		return nil, fmt.Errorf("listing plan for use case %d: %w", useCaseID, err)
	}
	defer rows.Close()

	var entries []*domain.PlanEntry
	for rows.Next() {
		var (
			p          domain.PlanEntry
			start, end sql.NullString
			a          auditScan
		)
		dest := append([]any{&p.ID, &p.UseCaseID, &p.PhaseID, &start, &end}, a.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning plan entry: %w", err)
		}
		if p.Audit, err = a.audit(r.d); err != nil {
			return nil, fmt.Errorf("plan entry %d: %w", p.ID, err)
		}
		p.StartDate, p.EndDate = start.String, end.String
		entries = append(entries, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan entries: %w", err)
	}
	return entries, nil
}
