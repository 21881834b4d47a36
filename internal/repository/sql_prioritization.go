package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// SQLPrioritizationRepo reads the prioritization table. Legacy stores may
// hold several rows per use case.
type SQLPrioritizationRepo struct {
	db db.DBTX
	d  db.Dialect
}

// NewSQLPrioritizationRepo creates a new SQLPrioritizationRepo.
func NewSQLPrioritizationRepo(conn db.DBTX, d db.Dialect) *SQLPrioritizationRepo {
	return &SQLPrioritizationRepo{db: conn, d: d}
}

func (r *SQLPrioritizationRepo) Current(ctx context.Context, useCaseID int64) (*domain.Prioritization, error) {
	query := r.d.Rebind(`SELECT id, usecaseid, reach, impact, confidence, effort, ricescore, priority,
		aigallerydisplay, sltreporting, totaluserbase, timespanid, reportingfrequencyid, ` + auditColumns + `
		FROM prioritization WHERE usecaseid = ? ORDER BY id DESC LIMIT 1`)

	var (
		p                                 domain.Prioritization
		reach, impact, confidence, effort sql.NullFloat64
		score                             sql.NullFloat64
		priority                          sql.NullInt64
		gallery, slt                      sql.NullInt64
		userBase, timespan, frequency     sql.NullInt64
		a                                 auditScan
	)
	dest := append([]any{
		&p.ID, &p.UseCaseID, &reach, &impact, &confidence, &effort, &score, &priority,
		&gallery, &slt, &userBase, &timespan, &frequency,
	}, a.dest()...)
	if err := r.db.QueryRowContext(ctx, query, useCaseID).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("prioritization for use case %d: %w", useCaseID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning prioritization: %w", err)
	}
	audit, err := a.audit(r.d)
	if err != nil {
		return nil, fmt.Errorf("prioritization %d: %w", p.ID, err)
	}
	p.Audit = audit
	p.Reach, p.Impact = float64Ptr(reach), float64Ptr(impact)
	p.Confidence, p.Effort = float64Ptr(confidence), float64Ptr(effort)
	p.RICEScore = float64Ptr(score)
	p.Priority = int64Ptr(priority)
	p.DisplayInGallery, p.SLTReporting = flagPtr(gallery), flagPtr(slt)
	p.TotalUserBase = int64Ptr(userBase)
	p.TimespanID, p.ReportingFrequencyID = int64Ptr(timespan), int64Ptr(frequency)
	return &p, nil
}
