package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres is the Dialect for Postgres through the pgx stdlib driver.
type Postgres struct {
	// LockTimeout bounds the wait for the id-allocation lock. Zero means
	// five seconds.
	LockTimeout time.Duration
}

func (Postgres) Name() string { return DriverPostgres }

// Rebind turns '?' placeholders into $1, $2, ... skipping quoted text.
func (Postgres) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (Postgres) TimeValue(t time.Time) any { return t.UTC() }

func (Postgres) ParseTime(v any) (time.Time, error) {
	return parseTimeValue(v)
}

func (Postgres) IdentityID(ctx context.Context, q DBTX, table string) (bool, error) {
	var isIdentity, columnDefault string
	err := q.QueryRowContext(ctx, `SELECT COALESCE(is_identity, 'NO'), COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1 AND column_name = 'id'`, table).
		Scan(&isIdentity, &columnDefault)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", table, ErrUnknownTable)
		}
		return false, fmt.Errorf("reading column metadata for %s: %w", table, err)
	}
	if strings.EqualFold(isIdentity, "YES") {
		return true, nil
	}
	return strings.HasPrefix(strings.ToLower(columnDefault), "nextval("), nil
}

// LockTable takes SHARE ROW EXCLUSIVE, which conflicts with itself and with
// concurrent inserts, so a second allocator waits until this transaction
// ends. lock_timeout is scoped to the transaction with SET LOCAL.
func (p Postgres) LockTable(ctx context.Context, tx DBTX, table string) error {
	timeout := p.LockTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`SET LOCAL lock_timeout = '%dms'`, timeout.Milliseconds())); err != nil {
		return fmt.Errorf("setting lock timeout: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`LOCK TABLE %s IN SHARE ROW EXCLUSIVE MODE`, QuoteIdent(table))); err != nil {
		return fmt.Errorf("locking %s for id allocation: %w", table, err)
	}
	return nil
}

func (Postgres) IsContention(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.SQLState() {
	case "55P03", // lock_not_available (incl. lock_timeout)
		"40P01", // deadlock_detected
		"40001": // serialization_failure
		return true
	default:
		return false
	}
}

func (Postgres) BootstrapDDL(manual map[string]bool) []string {
	return bootstrapStatements(ddlTypes{
		identityID: "id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY",
		manualID:   "id BIGINT PRIMARY KEY",
		timestamp:  "TIMESTAMPTZ",
		bigint:     "BIGINT",
		real:       "DOUBLE PRECISION",
	}, manual)
}
