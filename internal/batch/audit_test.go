package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func TestStamp_Insert(t *testing.T) {
	a := Stamp(nil, "a@example.com", "fallback@example.com", t0)
	assert.Equal(t, t0, a.Created)
	assert.Equal(t, t0, a.Modified)
	assert.Equal(t, "a@example.com", a.EditorEmail)
}

func TestStamp_InsertUsesFallbackWithoutEditor(t *testing.T) {
	a := Stamp(nil, "", "owner@example.com", t0)
	assert.Equal(t, "owner@example.com", a.EditorEmail)

	a = Stamp(nil, "", "", t0)
	assert.Empty(t, a.EditorEmail)
}

func TestStamp_UpdateKeepsCreated(t *testing.T) {
	existing := &Audit{Created: t0, Modified: t0, EditorEmail: "old@example.com"}
	later := t0.Add(time.Hour)

	a := Stamp(existing, "new@example.com", "", later)
	assert.Equal(t, t0, a.Created)
	assert.Equal(t, later, a.Modified)
	assert.Equal(t, "new@example.com", a.EditorEmail)
}

func TestStamp_UpdateWithoutEditorKeepsPrevious(t *testing.T) {
	existing := &Audit{Created: t0, Modified: t0, EditorEmail: "old@example.com"}
	a := Stamp(existing, "", "", t0.Add(time.Minute))
	assert.Equal(t, "old@example.com", a.EditorEmail)

	a = Stamp(existing, "", "fallback@example.com", t0.Add(time.Minute))
	assert.Equal(t, "fallback@example.com", a.EditorEmail)
}

func TestStamp_ModifiedStrictlyIncreases(t *testing.T) {
	existing := &Audit{Created: t0, Modified: t0.Add(time.Second)}

	// Clock equal to, then behind, the stored value.
	for _, now := range []time.Time{t0.Add(time.Second), t0} {
		a := Stamp(existing, "", "", now)
		assert.True(t, a.Modified.After(existing.Modified), "modified must advance for now=%s", now)
		assert.Equal(t, existing.Modified.Add(time.Microsecond), a.Modified)
	}
}
