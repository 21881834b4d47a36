package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(f float64) *float64 { return &f }
func ptrInt(i int64) *int64       { return &i }

func validSchema() *ImportSchema {
	return &ImportSchema{
		UseCaseID:    42,
		Editor:       "a@example.com",
		Stakeholders: []StakeholderImport{{RoleID: 1, Email: "pat@example.com"}},
		Plan:         []PlanImport{{PhaseID: 1, StartDate: "2025-01-01", EndDate: "2025-02-01"}},
		Updates:      []UpdateImport{{Text: "kickoff", Editor: "pat@example.com"}},
	}
}

func TestValidateImportSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validSchema()))
}

func TestValidateImportSchema_CollectsEveryProblem(t *testing.T) {
	s := &ImportSchema{
		Stakeholders:   []StakeholderImport{{RoleID: 0, Email: "not-an-email"}},
		Plan:           []PlanImport{{PhaseID: 1, StartDate: "2025-03-01", EndDate: "2025-01-01"}},
		Prioritization: &PrioritizationImport{Effort: ptrFloat(-1), TimespanID: ptrInt(0)},
		Updates:        []UpdateImport{{Text: " "}},
	}
	errs := ValidateImportSchema(s)

	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	joined := strings.Join(msgs, "\n")
	assert.Contains(t, joined, "usecase_id is required")
	assert.Contains(t, joined, "stakeholders[0].role_id")
	assert.Contains(t, joined, "not an email address")
	assert.Contains(t, joined, "plan[0]")
	assert.Contains(t, joined, "prioritization.effort")
	assert.Contains(t, joined, "prioritization.timespan_id")
	assert.Contains(t, joined, "updates[0].text")
	assert.Contains(t, joined, "updates[0].editor_email")
}

func TestConvert(t *testing.T) {
	s := validSchema()
	s.Updates = append(s.Updates, UpdateImport{Text: "second"})
	s.Prioritization = &PrioritizationImport{Reach: ptrFloat(10)}

	req := Convert(s)
	require.NotNil(t, req.Stakeholders)
	assert.Equal(t, int64(42), req.Stakeholders.UseCaseID)
	require.NotNil(t, req.Plan)
	assert.Len(t, req.Plan.Entries, 1)
	require.NotNil(t, req.Prioritize)
	assert.Equal(t, 10.0, *req.Prioritize.Patch.Reach)
	require.Len(t, req.Updates, 2)
	assert.Equal(t, "pat@example.com", req.Updates[0].Editor)
	assert.Equal(t, "a@example.com", req.Updates[1].Editor, "falls back to the file editor")
}

func TestConvert_EmptySections(t *testing.T) {
	req := Convert(&ImportSchema{UseCaseID: 1})
	assert.Nil(t, req.Stakeholders)
	assert.Nil(t, req.Plan)
	assert.Nil(t, req.Prioritize)
	assert.Empty(t, req.Updates)
}

func TestLoadImportSchema_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "usecase.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"usecase_id":7,"editor_email":"a@example.com","plan":[{"phase_id":2,"start_date":"2025-01-01"}]}`), 0o644))
	s, err := LoadImportSchema(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.UseCaseID)
	require.Len(t, s.Plan, 1)
	assert.Equal(t, int64(2), s.Plan[0].PhaseID)

	yamlPath := filepath.Join(dir, "usecase.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
usecase_id: 7
editor_email: a@example.com
stakeholders:
  - role_id: 3
    email: pat@example.com
prioritization:
  reach: 100
  priority: 2
  display_in_gallery: true
  reporting_frequency_id: 5
`), 0o644))
	s, err = LoadImportSchema(yamlPath)
	require.NoError(t, err)
	require.Len(t, s.Stakeholders, 1)
	assert.Equal(t, int64(3), s.Stakeholders[0].RoleID)
	require.NotNil(t, s.Prioritization)
	assert.Equal(t, 100.0, *s.Prioritization.Reach)
	assert.Equal(t, int64(2), *s.Prioritization.Priority)
	require.NotNil(t, s.Prioritization.DisplayInGallery)
	assert.True(t, *s.Prioritization.DisplayInGallery)
	assert.Equal(t, int64(5), *s.Prioritization.ReportingFrequencyID)
	assert.Equal(t, int64(5), *Convert(s).Prioritize.Patch.ReportingFrequencyID)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"usecase_id":`), 0o644))
	_, err = LoadImportSchema(badPath)
	assert.Error(t, err)
}
