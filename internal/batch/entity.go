package batch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Audit column names shared by every child table.
const (
	ColumnID          = "id"
	ColumnCreated     = "created"
	ColumnModified    = "modified"
	ColumnEditorEmail = "editor_email"
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Entity is the typed column mapping for one child table. Entities are
// declared in code and checked once by NewExecutor; nothing about the
// row shape is discovered at write time.
type Entity struct {
	// Name labels the entity in logs and metrics.
	Name  string
	Table string
	// ParentTable, when set, is checked for a row with id = ParentID
	// before anything is written.
	ParentTable  string
	ParentColumn string
	// KeyColumns together with ParentColumn form the natural key. An
	// upsertable entity may have none, meaning one row per parent.
	KeyColumns     []string
	PayloadColumns []string
	// AppendOnly entities have no natural key; every item is inserted.
	AppendOnly bool
}

// Check verifies the mapping itself: identifiers are plain lower-case SQL
// names and no column appears twice.
func (e Entity) Check() error {
	if e.Name == "" {
		return fmt.Errorf("entity name is required")
	}
	if !identRe.MatchString(e.Table) {
		return fmt.Errorf("entity %s: invalid table name %q", e.Name, e.Table)
	}
	if e.ParentTable != "" && !identRe.MatchString(e.ParentTable) {
		return fmt.Errorf("entity %s: invalid parent table name %q", e.Name, e.ParentTable)
	}
	if e.AppendOnly && len(e.KeyColumns) > 0 {
		return fmt.Errorf("entity %s: append-only entities have no natural key", e.Name)
	}
	seen := map[string]bool{
		ColumnID: true, ColumnCreated: true, ColumnModified: true, ColumnEditorEmail: true,
	}
	cols := append([]string{e.ParentColumn}, e.KeyColumns...)
	cols = append(cols, e.PayloadColumns...)
	for _, c := range cols {
		if !identRe.MatchString(c) {
			return fmt.Errorf("entity %s: invalid column name %q", e.Name, c)
		}
		if seen[c] {
			return fmt.Errorf("entity %s: column %q mapped twice", e.Name, c)
		}
		seen[c] = true
	}
	return nil
}

// Item is one child record to write. Key and Payload are positional and
// follow Entity.KeyColumns and Entity.PayloadColumns.
type Item struct {
	// ID, when non-zero, names an existing row to update regardless of its
	// natural key.
	ID      int64
	Key     []any
	Payload []any
	// EditorFallback is recorded as the editor when the request carries no
	// editor identity, e.g. the stakeholder's own email.
	EditorFallback string
}

// ValidateItems rejects the whole batch when any item cannot form its
// natural key or carries the wrong number of values.
func (e Entity) ValidateItems(items []Item) error {
	if len(items) == 0 {
		return Validationf(-1, "items is required")
	}
	for i, it := range items {
		if len(it.Payload) != len(e.PayloadColumns) {
			return Validationf(i, "expected %d payload values, got %d", len(e.PayloadColumns), len(it.Payload))
		}
		if e.AppendOnly {
			if it.ID != 0 || len(it.Key) != 0 {
				return Validationf(i, "%s rows are append-only and cannot be addressed", e.Name)
			}
			continue
		}
		if it.ID < 0 {
			return Validationf(i, "invalid id %d", it.ID)
		}
		if len(it.Key) != len(e.KeyColumns) {
			return Validationf(i, "expected %d natural key values, got %d", len(e.KeyColumns), len(it.Key))
		}
		for k, v := range it.Key {
			if isBlank(v) {
				return Validationf(i, "%s is required", e.KeyColumns[k])
			}
		}
	}
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// naturalKey encodes key values so that an item and the row scanned back
// from the store produce the same string.
func naturalKey(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = keyPart(v)
	}
	return strings.Join(parts, "\x1f")
}

func keyPart(v any) string {
	switch t := v.(type) {
	case nil:
		return "\x00"
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
