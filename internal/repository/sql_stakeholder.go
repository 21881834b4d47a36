package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// SQLStakeholderRepo reads the stakeholder table.
type SQLStakeholderRepo struct {
	db db.DBTX
	d  db.Dialect
}

// NewSQLStakeholderRepo creates a new SQLStakeholderRepo.
func NewSQLStakeholderRepo(conn db.DBTX, d db.Dialect) *SQLStakeholderRepo {
	return &SQLStakeholderRepo{db: conn, d: d}
}

const stakeholderColumns = `id, usecaseid, roleid, stakeholder_email, rolename, ` + auditColumns

func (r *SQLStakeholderRepo) ListByUseCase(ctx context.Context, useCaseID int64) ([]*domain.Stakeholder, error) {
	query := r.d.Rebind(`SELECT ` + stakeholderColumns + `
		FROM stakeholder WHERE usecaseid = ? ORDER BY id`)
	rows, err := r.db.QueryContext(ctx, query, useCaseID)
	if err != nil {
		return nil, fmt.Errorf("listing stakeholders for use case %d: %w", useCaseID, err)
	}
	defer rows.Close()

	var out []*domain.Stakeholder
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stakeholders: %w", err)
	}
	return out, nil
}

func (r *SQLStakeholderRepo) FindByEmail(ctx context.Context, useCaseID int64, email string) (*domain.Stakeholder, error) {
	query := r.d.Rebind(`SELECT ` + stakeholderColumns + `
		FROM stakeholder
		WHERE usecaseid = ? AND LOWER(TRIM(COALESCE(stakeholder_email, ''))) = ?
		ORDER BY id LIMIT 1`)
	s, err := r.scan(r.db.QueryRowContext(ctx, query, useCaseID, domain.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("stakeholder %s on use case %d: %w", email, useCaseID, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLStakeholderRepo) scan(s scanner) (*domain.Stakeholder, error) {
	var (
		st domain.Stakeholder
		a  auditScan
	)
	dest := append([]any{&st.ID, &st.UseCaseID, &st.RoleID, &st.Email, &st.RoleName}, a.dest()...)
	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning stakeholder: %w", err)
	}
	audit, err := a.audit(r.d)
	if err != nil {
		return nil, fmt.Errorf("stakeholder %d: %w", st.ID, err)
	}
	st.Audit = audit
	return &st, nil
}
