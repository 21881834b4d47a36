package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// SQLRoleRepo implements RoleRepo over the rolemapping table.
type SQLRoleRepo struct {
	db db.DBTX
	d  db.Dialect
}

// NewSQLRoleRepo creates a new SQLRoleRepo.
func NewSQLRoleRepo(conn db.DBTX, d db.Dialect) *SQLRoleRepo {
	return &SQLRoleRepo{db: conn, d: d}
}

func (r *SQLRoleRepo) GetByID(ctx context.Context, id int64) (*domain.RoleMapping, error) {
	query := r.d.Rebind(`SELECT id, rolename, roletype, isactive FROM rolemapping WHERE id = ?`)
	role, err := scanRole(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("role %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return role, nil
}

func (r *SQLRoleRepo) List(ctx context.Context, includeInactive bool) ([]*domain.RoleMapping, error) {
	query := `SELECT id, rolename, roletype, isactive FROM rolemapping`
	if !includeInactive {
		query += ` WHERE isactive <> 0`
	}
	query += ` ORDER BY rolename, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var roles []*domain.RoleMapping
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRole(s scanner) (*domain.RoleMapping, error) {
	var (
		role   domain.RoleMapping
		active int64
	)
	if err := s.Scan(&role.ID, &role.RoleName, &role.RoleType, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning role: %w", err)
	}
	role.Active = intToBool(active)
	return &role, nil
}
