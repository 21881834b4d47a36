package batch

import "time"

// Audit is the created/modified/editor triple carried by every child row.
type Audit struct {
	Created     time.Time
	Modified    time.Time
	EditorEmail string
}

// Stamp computes the audit triple for a write. existing is nil for an
// insert. created is never changed on update, and modified always moves
// forward: when now is not after the stored value it advances by one
// microsecond, the finest precision every supported store keeps.
func Stamp(existing *Audit, editor, fallback string, now time.Time) Audit {
	if existing == nil {
		who := editor
		if who == "" {
			who = fallback
		}
		return Audit{Created: now, Modified: now, EditorEmail: who}
	}

	out := Audit{Created: existing.Created, Modified: now, EditorEmail: existing.EditorEmail}
	if !now.After(existing.Modified) {
		out.Modified = existing.Modified.Add(time.Microsecond)
	}
	switch {
	case editor != "":
		out.EditorEmail = editor
	case fallback != "":
		out.EditorEmail = fallback
	}
	return out
}
