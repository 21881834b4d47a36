package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownTable is returned when store metadata has no trace of a table
// or of its id column.
var ErrUnknownTable = errors.New("table or id column not found in store metadata")

// Dialect isolates the handful of store-specific behaviours the batch
// protocol depends on. Table names passed in are trusted identifiers from
// the compile-time entity registry, never user input.
type Dialect interface {
	Name() string

	// Rebind rewrites a query written with '?' placeholders into the
	// dialect's placeholder syntax.
	Rebind(query string) string

	// TimeValue converts an audit timestamp into a bindable value.
	TimeValue(t time.Time) any

	// ParseTime converts a scanned audit timestamp back into time.Time.
	ParseTime(v any) (time.Time, error)

	// IdentityID reports whether the table's id column is generated by the
	// store.
	IdentityID(ctx context.Context, q DBTX, table string) (bool, error)

	// LockTable takes the id-allocation lock for table. The lock is held
	// until the enclosing transaction ends.
	LockTable(ctx context.Context, tx DBTX, table string) error

	// IsContention reports whether err means a lock could not be acquired
	// in time.
	IsContention(err error) bool

	// BootstrapDDL returns idempotent statements creating the schema. Tables
	// named in manual get an id column without store-side generation.
	BootstrapDDL(manual map[string]bool) []string
}

// QuoteIdent quotes a trusted identifier for interpolation into SQL text.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// parseTimeValue handles the representations drivers hand back for
// timestamp columns.
func parseTimeValue(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseTimeString(t)
	case []byte:
		return parseTimeString(string(t))
	case nil:
		return time.Time{}, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp value of type %T", v)
	}
}

func parseTimeString(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing timestamp %q", s)
}

// ddlTypes holds the column types that differ per dialect.
type ddlTypes struct {
	identityID string
	manualID   string
	timestamp  string
	bigint     string
	real       string
}

func bootstrapStatements(t ddlTypes, manual map[string]bool) []string {
	id := func(table string) string {
		if manual[table] {
			return t.manualID
		}
		return t.identityID
	}
	audit := fmt.Sprintf(`created      %[1]s NOT NULL,
		modified     %[1]s NOT NULL,
		editor_email TEXT`, t.timestamp)

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS usecases (
		%s,
		title        TEXT NOT NULL DEFAULT '',
		phase_id     %s,
		status_id    %s,
		%s
	)`, id("usecases"), t.bigint, t.bigint, audit),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS rolemapping (
		%s,
		rolename TEXT NOT NULL,
		roletype TEXT NOT NULL DEFAULT '',
		isactive INTEGER NOT NULL DEFAULT 1
	)`, id("rolemapping")),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "plan" (
		%s,
		usecaseid      %s NOT NULL REFERENCES usecases(id),
		usecasephaseid %s NOT NULL,
		startdate      TEXT,
		enddate        TEXT,
		%s
	)`, id("plan"), t.bigint, t.bigint, audit),
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_plan_usecase_phase ON "plan"(usecaseid, usecasephaseid)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS stakeholder (
		%s,
		usecaseid         %s NOT NULL REFERENCES usecases(id),
		roleid            %s NOT NULL,
		stakeholder_email TEXT NOT NULL,
		rolename          TEXT NOT NULL DEFAULT '',
		%s
	)`, id("stakeholder"), t.bigint, t.bigint, audit),
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_stakeholder_natural ON stakeholder(usecaseid, roleid, stakeholder_email)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS updates (
		%s,
		usecaseid        %s NOT NULL REFERENCES usecases(id),
		meaningfulupdate TEXT NOT NULL,
		roleid           %s,
		usecasephaseid   %s,
		usecasestatusid  %s,
		%s
	)`, id("updates"), t.bigint, t.bigint, t.bigint, t.bigint, audit),
		`CREATE INDEX IF NOT EXISTS idx_updates_usecase ON updates(usecaseid)`,

		// No unique constraint: legacy deployments carry duplicate rows per
		// use case and the highest id is the live one.
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS prioritization (
		%s,
		usecaseid  %s NOT NULL REFERENCES usecases(id),
		reach      %s,
		impact     %s,
		confidence %s,
		effort     %s,
		ricescore  %s,
		priority   %s,
		aigallerydisplay     INTEGER,
		sltreporting         INTEGER,
		totaluserbase        %s,
		timespanid           %s,
		reportingfrequencyid %s,
		%s
	)`, id("prioritization"), t.bigint, t.real, t.real, t.real, t.real, t.real, t.bigint, t.bigint, t.bigint, t.bigint, audit),
		`CREATE INDEX IF NOT EXISTS idx_prioritization_usecase ON prioritization(usecaseid)`,
	}
}
