package service

import (
	"context"
	"slices"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

type schemaModeService struct {
	resolver *batch.SchemaModeResolver
	conn     db.DBTX
}

func NewSchemaModeService(resolver *batch.SchemaModeResolver, conn db.DBTX) SchemaModeService {
	return &schemaModeService{resolver: resolver, conn: conn}
}

// TableMode only answers for child tables, so the process-lifetime cache
// never holds anything else.
func (s *schemaModeService) TableMode(ctx context.Context, table string) (string, error) {
	if !slices.Contains(ChildTables(), table) {
		return "", batch.Validationf(-1, "unknown table %q (expected one of %v)", table, ChildTables())
	}
	mode, err := s.resolver.Resolve(ctx, s.conn, table)
	if err != nil {
		return "", err
	}
	return mode.String(), nil
}

func (s *schemaModeService) Tables() []string { return ChildTables() }

func (s *schemaModeService) CheckTables(ctx context.Context) error {
	return s.resolver.Warm(ctx, s.conn, ChildTables()...)
}
