package batch

import (
	"fmt"
	"strings"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

// statements is the fixed set of parameterized templates for one entity.
// Item values are always bound, never interpolated; only the identifiers
// from the checked Entity appear in the SQL text.
type statements struct {
	parentExists      string
	snapshot          string
	insertWithID      string
	insertReturningID string
	updateByID        string
}

func buildStatements(e Entity, d db.Dialect) statements {
	q := db.QuoteIdent
	table := q(e.Table)

	keyCols := make([]string, 0, len(e.KeyColumns))
	for _, c := range e.KeyColumns {
		keyCols = append(keyCols, q(c))
	}

	// Insert column order: parent, keys, payload, audit.
	insertCols := []string{q(e.ParentColumn)}
	insertCols = append(insertCols, keyCols...)
	for _, c := range e.PayloadColumns {
		insertCols = append(insertCols, q(c))
	}
	insertCols = append(insertCols, q(ColumnCreated), q(ColumnModified), q(ColumnEditorEmail))

	// Update sets keys too, so an item addressed by id can move to a new key.
	setCols := make([]string, 0, len(keyCols)+len(e.PayloadColumns)+2)
	for _, c := range keyCols {
		setCols = append(setCols, c+" = ?")
	}
	for _, c := range e.PayloadColumns {
		setCols = append(setCols, q(c)+" = ?")
	}
	setCols = append(setCols, q(ColumnModified)+" = ?", q(ColumnEditorEmail)+" = ?")

	snapshotCols := append([]string{q(ColumnID)}, keyCols...)
	snapshotCols = append(snapshotCols, q(ColumnCreated), q(ColumnModified), q(ColumnEditorEmail))

	var s statements
	if e.ParentTable != "" {
		s.parentExists = d.Rebind(fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = ?`, q(e.ParentTable), q(ColumnID)))
	}
	s.snapshot = d.Rebind(fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s`,
		strings.Join(snapshotCols, ", "), table, q(e.ParentColumn), q(ColumnID)))
	s.insertWithID = d.Rebind(fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (%s)`,
		table, q(ColumnID), strings.Join(insertCols, ", "), placeholders(len(insertCols)+1)))
	s.insertReturningID = d.Rebind(fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		table, strings.Join(insertCols, ", "), placeholders(len(insertCols)), q(ColumnID)))
	s.updateByID = d.Rebind(fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ?`,
		table, strings.Join(setCols, ", "), q(ColumnID)))
	return s
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// insertArgs returns bound values in insert column order, without the id.
func insertArgs(d db.Dialect, parentID int64, it Item, a Audit) []any {
	args := make([]any, 0, 4+len(it.Key)+len(it.Payload))
	args = append(args, parentID)
	args = append(args, it.Key...)
	args = append(args, it.Payload...)
	return append(args, d.TimeValue(a.Created), d.TimeValue(a.Modified), nullableString(a.EditorEmail))
}

// updateArgs returns bound values in SET order followed by the id.
func updateArgs(d db.Dialect, id int64, it Item, a Audit) []any {
	args := make([]any, 0, 3+len(it.Key)+len(it.Payload))
	args = append(args, it.Key...)
	args = append(args, it.Payload...)
	return append(args, d.TimeValue(a.Modified), nullableString(a.EditorEmail), id)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
