package batch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks a malformed or incomplete batch. It is raised
	// before any store access.
	ErrValidation = errors.New("invalid batch")

	// ErrContention marks a lock that could not be acquired in time.
	// Callers may retry the whole batch.
	ErrContention = errors.New("lock contention")

	// ErrNotFound marks a referenced row (parent, surrogate id, lookup) that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks any other store failure. The transaction has been
	// rolled back.
	ErrPersistence = errors.New("persistence failure")

	// ErrSchemaMode marks a table whose id mode could not be determined.
	// This is a configuration problem and is never retried.
	ErrSchemaMode = errors.New("schema mode unavailable")
)

// Error is the single error shape returned for a failed batch. Kind is one
// of the sentinels above; errors.Is matches both Kind and the wrapped cause.
type Error struct {
	Kind  error
	Stage string
	Table string
	// Item is the index of the offending item in submission order, or -1.
	Item int
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Table != "" {
		b.WriteString(e.Table)
		b.WriteString(": ")
	}
	if e.Stage != "" {
		b.WriteString(e.Stage)
		b.WriteString(": ")
	}
	if e.Item >= 0 {
		fmt.Fprintf(&b, "item %d: ", e.Item)
	}
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, stage, table string, item int, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Table: table, Item: item, Err: err}
}

// Validationf builds an ErrValidation error for the given item (-1 for the
// batch as a whole).
func Validationf(item int, format string, args ...any) error {
	return newError(ErrValidation, "validate", "", item, fmt.Errorf(format, args...))
}

// NotFound wraps err as an ErrNotFound error. Prepare hooks use it to
// report failed lookups.
func NotFound(stage string, err error) error {
	return newError(ErrNotFound, stage, "", -1, err)
}

// IsRetryable reports whether re-submitting the same batch may succeed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrContention)
}
