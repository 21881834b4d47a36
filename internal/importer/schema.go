package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a use-case import file. Every
// section is optional; present sections are applied as separate batches.
type ImportSchema struct {
	UseCaseID      int64                 `json:"usecase_id" yaml:"usecase_id"`
	Editor         string                `json:"editor_email" yaml:"editor_email"`
	Stakeholders   []StakeholderImport   `json:"stakeholders,omitempty" yaml:"stakeholders,omitempty"`
	Plan           []PlanImport          `json:"plan,omitempty" yaml:"plan,omitempty"`
	Prioritization *PrioritizationImport `json:"prioritization,omitempty" yaml:"prioritization,omitempty"`
	Updates        []UpdateImport        `json:"updates,omitempty" yaml:"updates,omitempty"`
}

type StakeholderImport struct {
	RoleID int64  `json:"role_id" yaml:"role_id"`
	Email  string `json:"email" yaml:"email"`
}

type PlanImport struct {
	PhaseID   int64  `json:"phase_id" yaml:"phase_id"`
	StartDate string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

type PrioritizationImport struct {
	Reach      *float64 `json:"reach,omitempty" yaml:"reach,omitempty"`
	Impact     *float64 `json:"impact,omitempty" yaml:"impact,omitempty"`
	Confidence *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Effort     *float64 `json:"effort,omitempty" yaml:"effort,omitempty"`
	RICEScore  *float64 `json:"rice_score,omitempty" yaml:"rice_score,omitempty"`
	Priority   *int64   `json:"priority,omitempty" yaml:"priority,omitempty"`

	DisplayInGallery     *bool  `json:"display_in_gallery,omitempty" yaml:"display_in_gallery,omitempty"`
	SLTReporting         *bool  `json:"slt_reporting,omitempty" yaml:"slt_reporting,omitempty"`
	TotalUserBase        *int64 `json:"total_user_base,omitempty" yaml:"total_user_base,omitempty"`
	TimespanID           *int64 `json:"timespan_id,omitempty" yaml:"timespan_id,omitempty"`
	ReportingFrequencyID *int64 `json:"reporting_frequency_id,omitempty" yaml:"reporting_frequency_id,omitempty"`
}

// UpdateImport is one progress note. Editor defaults to the file's
// editor_email and must be a stakeholder by the time the note is written.
type UpdateImport struct {
	Text   string `json:"text" yaml:"text"`
	Editor string `json:"editor_email,omitempty" yaml:"editor_email,omitempty"`
}

// LoadImportSchema reads an import file. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
