package contract

import (
	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// Request bodies accepted by the HTTP surface. Field names follow the
// existing client: plan items use column names, everything else camelCase.

type PlanItem struct {
	UseCasePhaseID int64  `json:"usecasephaseid"`
	StartDate      string `json:"startdate"`
	EndDate        string `json:"enddate"`
}

type PlanPatchRequest struct {
	Items       []PlanItem `json:"items"`
	EditorEmail string     `json:"editorEmail"`
}

func (r PlanPatchRequest) ToApp(useCaseID int64) app.PlanBatchRequest {
	entries := make([]domain.PlanEntry, len(r.Items))
	for i, it := range r.Items {
		entries[i] = domain.PlanEntry{PhaseID: it.UseCasePhaseID, StartDate: it.StartDate, EndDate: it.EndDate}
	}
	return app.PlanBatchRequest{UseCaseID: useCaseID, Editor: r.EditorEmail, Entries: entries}
}

type StakeholderItem struct {
	ID               int64  `json:"id,omitempty"`
	RoleID           int64  `json:"roleId"`
	StakeholderEmail string `json:"stakeholderEmail"`
}

type StakeholderBatchRequest struct {
	Items       []StakeholderItem `json:"items"`
	EditorEmail string            `json:"editorEmail"`
}

func (r StakeholderBatchRequest) ToApp(useCaseID int64) app.StakeholderBatchRequest {
	out := make([]domain.Stakeholder, len(r.Items))
	for i, it := range r.Items {
		out[i] = domain.Stakeholder{ID: it.ID, RoleID: it.RoleID, Email: it.StakeholderEmail}
	}
	return app.StakeholderBatchRequest{UseCaseID: useCaseID, Editor: r.EditorEmail, Stakeholders: out}
}

// StakeholderRequest is the single-item body of POST and PATCH.
type StakeholderRequest struct {
	StakeholderItem
	EditorEmail string `json:"editorEmail"`
}

func (r StakeholderRequest) ToApp(useCaseID int64) app.StakeholderBatchRequest {
	return StakeholderBatchRequest{Items: []StakeholderItem{r.StakeholderItem}, EditorEmail: r.EditorEmail}.ToApp(useCaseID)
}

type UpdateRequest struct {
	MeaningfulUpdate string `json:"meaningfulUpdate"`
	EditorEmail      string `json:"editorEmail"`
}

func (r UpdateRequest) ToApp(useCaseID int64) app.ProgressUpdateRequest {
	return app.ProgressUpdateRequest{UseCaseID: useCaseID, Editor: r.EditorEmail, Text: r.MeaningfulUpdate}
}

// PrioritizeRequest accepts numbers or numeric strings; absent fields are
// left unchanged.
type PrioritizeRequest struct {
	Reach       *Number  `json:"reach"`
	Impact      *Number  `json:"impact"`
	Confidence  *Number  `json:"confidence"`
	Effort      *Number  `json:"effort"`
	RICEScore   *Number  `json:"riceScore"`
	Priority    *Integer `json:"priority"`
	EditorEmail string   `json:"editorEmail"`

	DisplayInGallery     *Flag    `json:"displayInGallery"`
	SLTReporting         *Flag    `json:"sltReporting"`
	TotalUserBase        *Integer `json:"totalUserBase"`
	TimespanID           *Integer `json:"timespanId"`
	ReportingFrequencyID *Integer `json:"reportingFrequencyId"`
}

func (r PrioritizeRequest) ToApp(useCaseID int64) app.PrioritizeRequest {
	return app.PrioritizeRequest{
		UseCaseID: useCaseID,
		Editor:    r.EditorEmail,
		Patch: domain.PrioritizationPatch{
			Reach:      r.Reach.Float(),
			Impact:     r.Impact.Float(),
			Confidence: r.Confidence.Float(),
			Effort:     r.Effort.Float(),
			RICEScore:  r.RICEScore.Float(),
			Priority:   r.Priority.Value(),

			DisplayInGallery:     r.DisplayInGallery.Value(),
			SLTReporting:         r.SLTReporting.Value(),
			TotalUserBase:        r.TotalUserBase.Value(),
			TimespanID:           r.TimespanID.Value(),
			ReportingFrequencyID: r.ReportingFrequencyID.Value(),
		},
	}
}
