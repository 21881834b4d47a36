package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// ValidateImportSchema checks the whole file before anything is written and
// returns every problem found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.UseCaseID <= 0 {
		errs = append(errs, fmt.Errorf("usecase_id is required"))
	}
	errs = append(errs, validateStakeholders(schema.Stakeholders)...)
	errs = append(errs, validatePlan(schema.Plan)...)
	errs = append(errs, validatePrioritization(schema.Prioritization)...)
	errs = append(errs, validateUpdates(schema.Updates, schema.Editor)...)

	return errs
}

func validateStakeholders(items []StakeholderImport) []error {
	var errs []error
	for i, s := range items {
		if s.RoleID <= 0 {
			errs = append(errs, fmt.Errorf("stakeholders[%d].role_id is required", i))
		}
		email := domain.NormalizeEmail(s.Email)
		if email == "" {
			errs = append(errs, fmt.Errorf("stakeholders[%d].email is required", i))
		} else if !strings.Contains(email, "@") {
			errs = append(errs, fmt.Errorf("stakeholders[%d].email: %q is not an email address", i, s.Email))
		}
	}
	return errs
}

func validatePlan(items []PlanImport) []error {
	var errs []error
	for i, p := range items {
		entry := domain.PlanEntry{PhaseID: p.PhaseID, StartDate: p.StartDate, EndDate: p.EndDate}
		if err := entry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("plan[%d]: %w", i, err))
		}
	}
	return errs
}

func validatePrioritization(p *PrioritizationImport) []error {
	if p == nil {
		return nil
	}
	var errs []error
	check := func(field string, v *float64) {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			errs = append(errs, fmt.Errorf("prioritization.%s must be a non-negative number", field))
		}
	}
	check("reach", p.Reach)
	check("impact", p.Impact)
	check("confidence", p.Confidence)
	check("effort", p.Effort)
	check("rice_score", p.RICEScore)
	if p.Priority != nil && *p.Priority < 0 {
		errs = append(errs, fmt.Errorf("prioritization.priority must be non-negative"))
	}
	if p.TotalUserBase != nil && *p.TotalUserBase < 0 {
		errs = append(errs, fmt.Errorf("prioritization.total_user_base must be non-negative"))
	}
	if p.TimespanID != nil && *p.TimespanID <= 0 {
		errs = append(errs, fmt.Errorf("prioritization.timespan_id must be positive"))
	}
	if p.ReportingFrequencyID != nil && *p.ReportingFrequencyID <= 0 {
		errs = append(errs, fmt.Errorf("prioritization.reporting_frequency_id must be positive"))
	}
	return errs
}

func validateUpdates(items []UpdateImport, fileEditor string) []error {
	var errs []error
	for i, u := range items {
		if strings.TrimSpace(u.Text) == "" {
			errs = append(errs, fmt.Errorf("updates[%d].text is required", i))
		}
		if strings.TrimSpace(u.Editor) == "" && strings.TrimSpace(fileEditor) == "" {
			errs = append(errs, fmt.Errorf("updates[%d].editor_email is required when the file has no editor_email", i))
		}
	}
	return errs
}
