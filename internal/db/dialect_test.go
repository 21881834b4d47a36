package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRebind(t *testing.T) {
	got := Postgres{}.Rebind(`UPDATE "plan" SET startdate = ?, enddate = ? WHERE id = ? AND note <> 'why?'`)
	assert.Equal(t, `UPDATE "plan" SET startdate = $1, enddate = $2 WHERE id = $3 AND note <> 'why?'`, got)
}

func TestSQLiteRebindIsIdentity(t *testing.T) {
	q := `SELECT id FROM "plan" WHERE usecaseid = ?`
	assert.Equal(t, q, SQLite{}.Rebind(q))
}

func TestPostgresIsContention(t *testing.T) {
	pg := Postgres{}
	assert.True(t, pg.IsContention(&pgconn.PgError{Code: "55P03"}))
	assert.True(t, pg.IsContention(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, pg.IsContention(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pg.IsContention(errors.New("plain")))
}

func TestSQLiteIsContention_NonDriverError(t *testing.T) {
	assert.False(t, SQLite{}.IsContention(errors.New("database is locked")))
}

func TestParseTimeValue(t *testing.T) {
	want := time.Date(2025, 1, 2, 3, 4, 5, 600, time.UTC)

	got, err := SQLite{}.ParseTime(SQLite{}.TimeValue(want))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = Postgres{}.ParseTime(want.In(time.FixedZone("x", 3600)))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	got, err = parseTimeValue([]byte("2025-01-02 03:04:05"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), got)

	_, err = parseTimeValue(42)
	assert.Error(t, err)
}

func TestSQLiteIdentityID_UnknownTable(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Dialect.IdentityID(context.Background(), store.DB, "no_such_table")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestPostgresBootstrapDDL_ManualTable(t *testing.T) {
	stmts := Postgres{}.BootstrapDDL(map[string]bool{"plan": true})
	var planDDL string
	for _, s := range stmts {
		if strings.Contains(s, `CREATE TABLE IF NOT EXISTS "plan"`) {
			planDDL = s
		}
	}
	require.NotEmpty(t, planDDL)
	assert.Contains(t, planDDL, "id BIGINT PRIMARY KEY")
	assert.Contains(t, planDDL, "TIMESTAMPTZ")
	assert.NotContains(t, planDDL, "GENERATED BY DEFAULT AS IDENTITY")
}
