package app

import "github.com/Chitresh-code/aiexplorer-sub002/internal/domain"

// Editor fields carry the caller's identity. An empty editor keeps the
// stored editor on updates (or falls back per entity on inserts).

type PlanBatchRequest struct {
	UseCaseID int64
	Editor    string
	Entries   []domain.PlanEntry
}

// BatchCounts summarizes how a committed batch was applied.
type BatchCounts struct {
	Mode     string
	Inserted int
	Updated  int
}

type PlanBatchResult struct {
	BatchCounts
	// Entries echo the request in submission order with ids and audit set.
	Entries []domain.PlanEntry
}

type StakeholderBatchRequest struct {
	UseCaseID    int64
	Editor       string
	Stakeholders []domain.Stakeholder
}

type StakeholderBatchResult struct {
	BatchCounts
	Stakeholders []domain.Stakeholder
}

type ProgressUpdateRequest struct {
	UseCaseID int64
	Editor    string
	Text      string
}

type PrioritizeRequest struct {
	UseCaseID int64
	Editor    string
	Patch     domain.PrioritizationPatch
}

type PrioritizeResult struct {
	Prioritization domain.Prioritization
	// Created is true when no row existed for the use case.
	Created bool
}

// ImportResult reports what an import applied. Sections commit one by one,
// so a failed import may still have applied the earlier ones.
type ImportResult struct {
	UseCaseID    int64
	Stakeholders BatchCounts
	Plan         BatchCounts
	Prioritized  bool
	Updates      int
}
