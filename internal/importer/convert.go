package importer

import (
	"strings"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// Requests is a validated file split into the per-entity requests, in the
// order they are applied.
type Requests struct {
	Stakeholders *app.StakeholderBatchRequest
	Plan         *app.PlanBatchRequest
	Prioritize   *app.PrioritizeRequest
	Updates      []app.ProgressUpdateRequest
}

// Convert maps a schema that passed ValidateImportSchema to service
// requests. Empty sections produce no request.
func Convert(schema *ImportSchema) Requests {
	var out Requests
	id, editor := schema.UseCaseID, schema.Editor

	if len(schema.Stakeholders) > 0 {
		list := make([]domain.Stakeholder, len(schema.Stakeholders))
		for i, s := range schema.Stakeholders {
			list[i] = domain.Stakeholder{RoleID: s.RoleID, Email: s.Email}
		}
		out.Stakeholders = &app.StakeholderBatchRequest{UseCaseID: id, Editor: editor, Stakeholders: list}
	}

	if len(schema.Plan) > 0 {
		entries := make([]domain.PlanEntry, len(schema.Plan))
		for i, p := range schema.Plan {
			entries[i] = domain.PlanEntry{PhaseID: p.PhaseID, StartDate: p.StartDate, EndDate: p.EndDate}
		}
		out.Plan = &app.PlanBatchRequest{UseCaseID: id, Editor: editor, Entries: entries}
	}

	if p := schema.Prioritization; p != nil {
		patch := domain.PrioritizationPatch{
			Reach:      p.Reach,
			Impact:     p.Impact,
			Confidence: p.Confidence,
			Effort:     p.Effort,
			RICEScore:  p.RICEScore,
			Priority:   p.Priority,

			DisplayInGallery:     p.DisplayInGallery,
			SLTReporting:         p.SLTReporting,
			TotalUserBase:        p.TotalUserBase,
			TimespanID:           p.TimespanID,
			ReportingFrequencyID: p.ReportingFrequencyID,
		}
		if !patch.Empty() || editor != "" {
			out.Prioritize = &app.PrioritizeRequest{UseCaseID: id, Editor: editor, Patch: patch}
		}
	}

	for _, u := range schema.Updates {
		ed := strings.TrimSpace(u.Editor)
		if ed == "" {
			ed = editor
		}
		out.Updates = append(out.Updates, app.ProgressUpdateRequest{UseCaseID: id, Editor: ed, Text: u.Text})
	}
	return out
}
