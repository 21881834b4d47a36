package domain

import (
	"fmt"
	"strings"
)

// ProgressUpdate is an append-only note on a use case. RoleID, PhaseID and
// StatusID are snapshotted when the note is written and never change.
type ProgressUpdate struct {
	ID        int64
	UseCaseID int64
	Text      string
	RoleID    *int64
	PhaseID   *int64
	StatusID  *int64
	Audit
}

// Validate trims the note text and requires it to be non-empty.
func (u *ProgressUpdate) Validate() error {
	u.Text = strings.TrimSpace(u.Text)
	if u.Text == "" {
		return fmt.Errorf("meaningfulUpdate is required")
	}
	return nil
}
