package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanEntryValidate_NormalizesDates(t *testing.T) {
	p := &PlanEntry{PhaseID: 1, StartDate: " 2025-01-01 ", EndDate: "2025-02-01T10:00:00Z"}
	require.NoError(t, p.Validate())
	assert.Equal(t, "2025-01-01", p.StartDate)
	assert.Equal(t, "2025-02-01", p.EndDate)
}

func TestPlanEntryValidate_EmptyDatesAllowed(t *testing.T) {
	p := &PlanEntry{PhaseID: 3}
	require.NoError(t, p.Validate())
	assert.Empty(t, p.StartDate)
	assert.Empty(t, p.EndDate)
}

func TestPlanEntryValidate_MissingPhase(t *testing.T) {
	p := &PlanEntry{StartDate: "2025-01-01"}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usecasephaseid")
}

func TestPlanEntryValidate_BadDate(t *testing.T) {
	p := &PlanEntry{PhaseID: 1, StartDate: "01/02/2025"}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startdate")
}

func TestPlanEntryValidate_EndBeforeStart(t *testing.T) {
	p := &PlanEntry{PhaseID: 1, StartDate: "2025-03-01", EndDate: "2025-02-01"}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before")
}

func TestStakeholderValidate_NormalizesEmail(t *testing.T) {
	s := &Stakeholder{RoleID: 2, Email: "  Alice@Example.COM "}
	require.NoError(t, s.Validate())
	assert.Equal(t, "alice@example.com", s.Email)
}

func TestStakeholderValidate_RequiresRoleAndEmail(t *testing.T) {
	assert.Error(t, (&Stakeholder{RoleID: 0, Email: "a@x.com"}).Validate())
	assert.Error(t, (&Stakeholder{RoleID: 1, Email: "   "}).Validate())
	assert.Error(t, (&Stakeholder{ID: -1, RoleID: 1, Email: "a@x.com"}).Validate())
}

func TestProgressUpdateValidate(t *testing.T) {
	u := &ProgressUpdate{Text: "  shipped pilot  "}
	require.NoError(t, u.Validate())
	assert.Equal(t, "shipped pilot", u.Text)

	assert.Error(t, (&ProgressUpdate{Text: " \n "}).Validate())
}
