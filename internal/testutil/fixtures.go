package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// UseCase options
type UseCaseOption func(*domain.UseCase)

func WithUseCaseID(id int64) UseCaseOption {
	return func(u *domain.UseCase) {
		u.ID = id
	}
}

func WithPhase(id int64) UseCaseOption {
	return func(u *domain.UseCase) {
		u.PhaseID = &id
	}
}

func WithStatus(id int64) UseCaseOption {
	return func(u *domain.UseCase) {
		u.StatusID = &id
	}
}

func NewTestUseCase(title string, opts ...UseCaseOption) *domain.UseCase {
	now := time.Now().UTC()
	phase, status := int64(1), int64(1)
	u := &domain.UseCase{
		Title:    title,
		PhaseID:  &phase,
		StatusID: &status,
		Audit:    domain.Audit{Created: now, Modified: now, EditorEmail: "fixture@example.com"},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// SeedUseCase writes a use case and returns its id. Without WithUseCaseID
// the next free id is used, so it works whatever the table's id mode.
func SeedUseCase(t *testing.T, store *db.Store, title string, opts ...UseCaseOption) int64 {
	t.Helper()
	u := NewTestUseCase(title, opts...)
	ctx := context.Background()
	if u.ID == 0 {
		u.ID = nextID(t, store, "usecases")
	}
	_, err := store.DB.ExecContext(ctx, store.Dialect.Rebind(
		`INSERT INTO usecases (id, title, phase_id, status_id, created, modified, editor_email)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Title, nullableInt(u.PhaseID), nullableInt(u.StatusID),
		store.Dialect.TimeValue(u.Created), store.Dialect.TimeValue(u.Modified), u.EditorEmail)
	if err != nil {
		t.Fatalf("seeding use case %q: %v", title, err)
	}
	return u.ID
}

// Role options
type RoleOption func(*domain.RoleMapping)

func WithRoleType(kind string) RoleOption {
	return func(r *domain.RoleMapping) {
		r.RoleType = kind
	}
}

func Inactive() RoleOption {
	return func(r *domain.RoleMapping) {
		r.Active = false
	}
}

// SeedRole writes a role mapping row and returns its id.
func SeedRole(t *testing.T, store *db.Store, name string, opts ...RoleOption) int64 {
	t.Helper()
	r := &domain.RoleMapping{RoleName: name, RoleType: "stakeholder", Active: true}
	for _, opt := range opts {
		opt(r)
	}
	r.ID = nextID(t, store, "rolemapping")
	active := 0
	if r.Active {
		active = 1
	}
	_, err := store.DB.ExecContext(context.Background(), store.Dialect.Rebind(
		`INSERT INTO rolemapping (id, rolename, roletype, isactive) VALUES (?, ?, ?, ?)`),
		r.ID, r.RoleName, r.RoleType, active)
	if err != nil {
		t.Fatalf("seeding role %q: %v", name, err)
	}
	return r.ID
}

// CountRows returns the number of rows in table for the given use case.
func CountRows(t *testing.T, store *db.Store, table string, useCaseID int64) int {
	t.Helper()
	var n int
	query := store.Dialect.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE usecaseid = ?`, db.QuoteIdent(table)))
	if err := store.DB.QueryRowContext(context.Background(), query, useCaseID).Scan(&n); err != nil {
		t.Fatalf("counting %s rows: %v", table, err)
	}
	return n
}

func nextID(t *testing.T, store *db.Store, table string) int64 {
	t.Helper()
	var id int64
	query := fmt.Sprintf(`SELECT COALESCE(MAX(id), 0) + 1 FROM %s`, db.QuoteIdent(table))
	if err := store.DB.QueryRowContext(context.Background(), query).Scan(&id); err != nil {
		t.Fatalf("reading next %s id: %v", table, err)
	}
	return id
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
