package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

// Mode says who assigns row ids for a table.
type Mode int

const (
	// ModeIdentity means the store generates ids on insert.
	ModeIdentity Mode = iota + 1
	// ModeManual means ids are allocated by IDAllocator.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeIdentity:
		return "identity"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// SchemaModeResolver reports and caches each table's id mode. The cache
// lives for the process; a table's mode is not expected to change under a
// running server. Concurrent first lookups may both hit the store; they
// compute the same answer.
type SchemaModeResolver struct {
	dialect db.Dialect
	cache   sync.Map // table -> Mode
}

// NewSchemaModeResolver creates a resolver for the given dialect.
func NewSchemaModeResolver(dialect db.Dialect) *SchemaModeResolver {
	return &SchemaModeResolver{dialect: dialect}
}

// Resolve returns the id mode of table, querying store metadata on the
// first call only. table must be a compile-time identifier.
func (r *SchemaModeResolver) Resolve(ctx context.Context, q db.DBTX, table string) (Mode, error) {
	if m, ok := r.cache.Load(table); ok {
		return m.(Mode), nil
	}
	if !identRe.MatchString(table) {
		return 0, newError(ErrSchemaMode, "resolve mode", table, -1, fmt.Errorf("invalid table name %q", table))
	}

	identity, err := r.dialect.IdentityID(ctx, q, table)
	if err != nil {
		return 0, newError(ErrSchemaMode, "resolve mode", table, -1, err)
	}
	mode := ModeManual
	if identity {
		mode = ModeIdentity
	}
	r.cache.Store(table, mode)
	return mode, nil
}

// Warm resolves every table up front so a misconfigured store fails at
// startup instead of on the first write.
func (r *SchemaModeResolver) Warm(ctx context.Context, q db.DBTX, tables ...string) error {
	for _, t := range tables {
		if _, err := r.Resolve(ctx, q, t); err != nil {
			return err
		}
	}
	return nil
}

// Cached returns the cached mode of table without touching the store.
func (r *SchemaModeResolver) Cached(table string) (Mode, bool) {
	m, ok := r.cache.Load(table)
	if !ok {
		return 0, false
	}
	return m.(Mode), true
}
