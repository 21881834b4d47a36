package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// SQLUseCaseRepo implements UseCaseRepo. conn may be a transaction.
type SQLUseCaseRepo struct {
	db db.DBTX
	d  db.Dialect
}

// NewSQLUseCaseRepo creates a new SQLUseCaseRepo.
func NewSQLUseCaseRepo(conn db.DBTX, d db.Dialect) *SQLUseCaseRepo {
	return &SQLUseCaseRepo{db: conn, d: d}
}

func (r *SQLUseCaseRepo) GetByID(ctx context.Context, id int64) (*domain.UseCase, error) {
	query := r.d.Rebind(`SELECT id, title, phase_id, status_id, ` + auditColumns + `
		FROM usecases WHERE id = ?`)

	var (
		u             domain.UseCase
		phase, status sql.NullInt64
		a             auditScan
	)
	dest := append([]any{&u.ID, &u.Title, &phase, &status}, a.dest()...)
	if err := r.db.QueryRowContext(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("use case %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning use case: %w", err)
	}
	audit, err := a.audit(r.d)
	if err != nil {
		return nil, fmt.Errorf("use case %d: %w", id, err)
	}
	u.PhaseID = int64Ptr(phase)
	u.StatusID = int64Ptr(status)
	u.Audit = audit
	return &u, nil
}
