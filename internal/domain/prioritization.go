package domain

import (
	"fmt"
	"math"
)

// Prioritization holds the RICE inputs and resulting priority of a use
// case, plus its gallery and reporting settings. There is one live row per
// use case; nil fields are not set.
type Prioritization struct {
	ID         int64
	UseCaseID  int64
	Reach      *float64
	Impact     *float64
	Confidence *float64
	Effort     *float64
	RICEScore  *float64
	Priority   *int64

	DisplayInGallery     *bool
	SLTReporting         *bool
	TotalUserBase        *int64
	TimespanID           *int64
	ReportingFrequencyID *int64
	Audit
}

// PrioritizationPatch lists the fields a caller wants to change. Fields
// left nil keep their stored value.
type PrioritizationPatch struct {
	Reach      *float64
	Impact     *float64
	Confidence *float64
	Effort     *float64
	RICEScore  *float64
	Priority   *int64

	DisplayInGallery     *bool
	SLTReporting         *bool
	TotalUserBase        *int64
	TimespanID           *int64
	ReportingFrequencyID *int64
}

// Empty reports whether the patch changes nothing.
func (p PrioritizationPatch) Empty() bool {
	return p.Reach == nil && p.Impact == nil && p.Confidence == nil &&
		p.Effort == nil && p.RICEScore == nil && p.Priority == nil &&
		p.DisplayInGallery == nil && p.SLTReporting == nil && p.TotalUserBase == nil &&
		p.TimespanID == nil && p.ReportingFrequencyID == nil
}

// Validate rejects negative and non-finite RICE inputs, a negative user
// base and lookup ids that are not positive.
func (p PrioritizationPatch) Validate() error {
	if p.TotalUserBase != nil && *p.TotalUserBase < 0 {
		return fmt.Errorf("totalUserBase must not be negative")
	}
	if p.TimespanID != nil && *p.TimespanID <= 0 {
		return fmt.Errorf("timespanId must be positive")
	}
	if p.ReportingFrequencyID != nil && *p.ReportingFrequencyID <= 0 {
		return fmt.Errorf("reportingFrequencyId must be positive")
	}
	fields := []struct {
		name string
		v    *float64
	}{
		{"reach", p.Reach}, {"impact", p.Impact}, {"confidence", p.Confidence},
		{"effort", p.Effort}, {"riceScore", p.RICEScore},
	}
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) || *f.v < 0 {
			return fmt.Errorf("%s must be a non-negative number", f.name)
		}
	}
	return nil
}

// Apply merges the patch over the stored values. When the caller did not
// supply a score and all four inputs are known, the score is recomputed.
func (p *Prioritization) Apply(patch PrioritizationPatch) {
	if patch.Reach != nil {
		p.Reach = patch.Reach
	}
	if patch.Impact != nil {
		p.Impact = patch.Impact
	}
	if patch.Confidence != nil {
		p.Confidence = patch.Confidence
	}
	if patch.Effort != nil {
		p.Effort = patch.Effort
	}
	if patch.Priority != nil {
		p.Priority = patch.Priority
	}
	if patch.DisplayInGallery != nil {
		p.DisplayInGallery = patch.DisplayInGallery
	}
	if patch.SLTReporting != nil {
		p.SLTReporting = patch.SLTReporting
	}
	if patch.TotalUserBase != nil {
		p.TotalUserBase = patch.TotalUserBase
	}
	if patch.TimespanID != nil {
		p.TimespanID = patch.TimespanID
	}
	if patch.ReportingFrequencyID != nil {
		p.ReportingFrequencyID = patch.ReportingFrequencyID
	}
	if patch.RICEScore != nil {
		p.RICEScore = patch.RICEScore
		return
	}
	if score, ok := RICEScore(p.Reach, p.Impact, p.Confidence, p.Effort); ok {
		p.RICEScore = &score
	}
}

// RICEScore computes reach × impact × confidence / effort. ok is false when
// any input is missing or effort is zero.
func RICEScore(reach, impact, confidence, effort *float64) (float64, bool) {
	if reach == nil || impact == nil || confidence == nil || effort == nil || *effort == 0 {
		return 0, false
	}
	return *reach * *impact * *confidence / *effort, true
}
