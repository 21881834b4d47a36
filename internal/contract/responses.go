package contract

import (
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

type AuditFields struct {
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	EditorEmail string    `json:"editorEmail,omitempty"`
}

func auditFields(a domain.Audit) AuditFields {
	return AuditFields{Created: a.Created, Modified: a.Modified, EditorEmail: a.EditorEmail}
}

type PlanEntryResponse struct {
	ID             int64  `json:"id"`
	UseCaseID      int64  `json:"usecaseid"`
	UseCasePhaseID int64  `json:"usecasephaseid"`
	StartDate      string `json:"startdate,omitempty"`
	EndDate        string `json:"enddate,omitempty"`
	AuditFields
}

func FromPlanEntry(p domain.PlanEntry) PlanEntryResponse {
	return PlanEntryResponse{
		ID:             p.ID,
		UseCaseID:      p.UseCaseID,
		UseCasePhaseID: p.PhaseID,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		AuditFields:    auditFields(p.Audit),
	}
}

type StakeholderResponse struct {
	ID               int64  `json:"id"`
	UseCaseID        int64  `json:"usecaseid"`
	RoleID           int64  `json:"roleId"`
	RoleName         string `json:"roleName"`
	StakeholderEmail string `json:"stakeholderEmail"`
	AuditFields
}

func FromStakeholder(s domain.Stakeholder) StakeholderResponse {
	return StakeholderResponse{
		ID:               s.ID,
		UseCaseID:        s.UseCaseID,
		RoleID:           s.RoleID,
		RoleName:         s.RoleName,
		StakeholderEmail: s.Email,
		AuditFields:      auditFields(s.Audit),
	}
}

type UpdateResponse struct {
	ID               int64  `json:"id"`
	UseCaseID        int64  `json:"usecaseid"`
	MeaningfulUpdate string `json:"meaningfulupdate"`
	RoleID           *int64 `json:"roleid"`
	UseCasePhaseID   *int64 `json:"usecasephaseid"`
	UseCaseStatusID  *int64 `json:"usecasestatusid"`
	AuditFields
}

func FromUpdate(u domain.ProgressUpdate) UpdateResponse {
	return UpdateResponse{
		ID:               u.ID,
		UseCaseID:        u.UseCaseID,
		MeaningfulUpdate: u.Text,
		RoleID:           u.RoleID,
		UseCasePhaseID:   u.PhaseID,
		UseCaseStatusID:  u.StatusID,
		AuditFields:      auditFields(u.Audit),
	}
}

type PrioritizationResponse struct {
	ID         int64    `json:"id"`
	UseCaseID  int64    `json:"usecaseid"`
	Reach      *float64 `json:"reach"`
	Impact     *float64 `json:"impact"`
	Confidence *float64 `json:"confidence"`
	Effort     *float64 `json:"effort"`
	RICEScore  *float64 `json:"riceScore"`
	Priority   *int64   `json:"priority"`

	DisplayInGallery     *bool  `json:"displayInGallery"`
	SLTReporting         *bool  `json:"sltReporting"`
	TotalUserBase        *int64 `json:"totalUserBase"`
	TimespanID           *int64 `json:"timespanId"`
	ReportingFrequencyID *int64 `json:"reportingFrequencyId"`
	AuditFields
}

func FromPrioritization(p domain.Prioritization) PrioritizationResponse {
	return PrioritizationResponse{
		ID:          p.ID,
		UseCaseID:   p.UseCaseID,
		Reach:       p.Reach,
		Impact:      p.Impact,
		Confidence:  p.Confidence,
		Effort:      p.Effort,
		RICEScore:   p.RICEScore,
		Priority:    p.Priority,

		DisplayInGallery:     p.DisplayInGallery,
		SLTReporting:         p.SLTReporting,
		TotalUserBase:        p.TotalUserBase,
		TimespanID:           p.TimespanID,
		ReportingFrequencyID: p.ReportingFrequencyID,
		AuditFields:          auditFields(p.Audit),
	}
}

// ListResponse wraps successful batch writes and list reads.
type ListResponse[T any] struct {
	OK    bool `json:"ok"`
	Items []T  `json:"items"`
}

// ItemResponse wraps single-item writes and reads.
type ItemResponse[T any] struct {
	OK   bool `json:"ok"`
	Item T    `json:"item"`
}

// Map converts every element with fn.
func Map[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// Deref adapts a value converter to pointer elements.
func Deref[S, T any](fn func(S) T) func(*S) T {
	return func(p *S) T { return fn(*p) }
}
