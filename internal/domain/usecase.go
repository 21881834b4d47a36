package domain

import (
	"strings"
	"time"
)

// Audit is the bookkeeping stamped on every child row.
type Audit struct {
	Created     time.Time
	Modified    time.Time
	EditorEmail string
}

// UseCase is the parent every child record hangs off. The core only reads
// it: for the existence check and for the phase/status snapshot taken by
// progress updates.
type UseCase struct {
	ID       int64
	Title    string
	PhaseID  *int64
	StatusID *int64
	Audit
}

type RoleMapping struct {
	ID       int64
	RoleName string
	RoleType string
	Active   bool
}

// NormalizeEmail trims and lower-cases an email so that keys built from
// it compare equal regardless of how the caller typed it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
