package db

import (
	"context"
	"fmt"
	"strings"
)

// Migrate creates any missing tables and indexes. Statements are idempotent
// and safe to re-run on every start. Tables listed in manualIDTables are
// created without store-side id generation; existing tables keep whatever
// shape they already have.
func Migrate(ctx context.Context, store *Store, manualIDTables []string) error {
	manual := make(map[string]bool, len(manualIDTables))
	for _, t := range manualIDTables {
		t = strings.TrimSpace(strings.ToLower(t))
		if t != "" {
			manual[t] = true
		}
	}
	for i, stmt := range store.Dialect.BootstrapDDL(manual) {
		if _, err := store.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
