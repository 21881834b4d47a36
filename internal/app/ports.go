package app

import (
	"context"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

type PlanUseCase interface {
	UpsertPlan(ctx context.Context, req PlanBatchRequest) (*PlanBatchResult, error)
	ListPlan(ctx context.Context, useCaseID int64) ([]*domain.PlanEntry, error)
}

type StakeholderUseCase interface {
	// UpsertStakeholders also serves the single-item create and the
	// update-by-id paths: a Stakeholder with a non-zero ID must already
	// belong to the use case.
	UpsertStakeholders(ctx context.Context, req StakeholderBatchRequest) (*StakeholderBatchResult, error)
	ListStakeholders(ctx context.Context, useCaseID int64) ([]*domain.Stakeholder, error)
}

type ProgressUpdateUseCase interface {
	AddUpdate(ctx context.Context, req ProgressUpdateRequest) (*domain.ProgressUpdate, error)
	ListUpdates(ctx context.Context, useCaseID int64) ([]*domain.ProgressUpdate, error)
}

type PrioritizeUseCase interface {
	Prioritize(ctx context.Context, req PrioritizeRequest) (*PrioritizeResult, error)
	CurrentPrioritization(ctx context.Context, useCaseID int64) (*domain.Prioritization, error)
}

type SchemaModeUseCase interface {
	// TableMode reports "identity" or "manual" for a child table.
	TableMode(ctx context.Context, table string) (string, error)
	// Tables lists the child tables written in batches.
	Tables() []string
	// CheckTables resolves every child table, failing on the first one
	// whose id mode cannot be determined.
	CheckTables(ctx context.Context) error
}

type ImportUseCase interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}
