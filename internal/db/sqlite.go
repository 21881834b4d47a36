package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite is the Dialect for modernc.org/sqlite.
type SQLite struct{}

func (SQLite) Name() string { return DriverSQLite }

func (SQLite) Rebind(query string) string { return query }

// TimeValue stores timestamps as UTC RFC3339Nano text.
func (SQLite) TimeValue(t time.Time) any {
	return t.UTC().Format(time.RFC3339Nano)
}

func (SQLite) ParseTime(v any) (time.Time, error) {
	return parseTimeValue(v)
}

// IdentityID reports true when id is the table's only primary-key column
// and is declared INTEGER, which makes it an alias of the rowid.
func (SQLite) IdentityID(ctx context.Context, q DBTX, table string) (bool, error) {
	rows, err := q.QueryContext(ctx, `SELECT name, type, pk FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	var (
		found   bool
		idType  string
		idPK    int
		pkCount int
	)
	for rows.Next() {
		var name, colType string
		var pk int
		if err := rows.Scan(&name, &colType, &pk); err != nil {
			return false, fmt.Errorf("scanning table info for %s: %w", table, err)
		}
		if pk > 0 {
			pkCount++
		}
		if strings.EqualFold(name, "id") {
			found = true
			idType = colType
			idPK = pk
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterating table info for %s: %w", table, err)
	}
	if !found {
		return false, fmt.Errorf("%s: %w", table, ErrUnknownTable)
	}
	return idPK == 1 && pkCount == 1 && strings.EqualFold(idType, "INTEGER"), nil
}

// LockTable issues a write statement that touches no rows. Connections
// opened by OpenSQLite already hold the write lock from BEGIN IMMEDIATE;
// for any other transaction this acquires it, and SQLite keeps it until the
// transaction ends.
func (SQLite) LockTable(ctx context.Context, tx DBTX, table string) error {
	query := fmt.Sprintf(`UPDATE %s SET id = id WHERE id < 0`, QuoteIdent(table))
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("locking %s for id allocation: %w", table, err)
	}
	return nil
}

func (SQLite) IsContention(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	default:
		return false
	}
}

func (SQLite) BootstrapDDL(manual map[string]bool) []string {
	return bootstrapStatements(ddlTypes{
		identityID: "id INTEGER PRIMARY KEY AUTOINCREMENT",
		manualID:   "id BIGINT NOT NULL PRIMARY KEY",
		timestamp:  "TEXT",
		bigint:     "BIGINT",
		real:       "REAL",
	}, manual)
}
