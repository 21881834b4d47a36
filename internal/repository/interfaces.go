package repository

import (
	"context"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
)

// Repositories here are read-only. Child rows are written exclusively by
// batch.Executor so that id allocation and audit stamping cannot be
// bypassed.

type UseCaseRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.UseCase, error)
}

type RoleRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.RoleMapping, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.RoleMapping, error)
}

type PlanRepo interface {
	ListByUseCase(ctx context.Context, useCaseID int64) ([]*domain.PlanEntry, error)
}

type StakeholderRepo interface {
	ListByUseCase(ctx context.Context, useCaseID int64) ([]*domain.Stakeholder, error)
	// FindByEmail matches the email case-insensitively and ignores
	// surrounding whitespace in stored values.
	FindByEmail(ctx context.Context, useCaseID int64, email string) (*domain.Stakeholder, error)
}

type UpdateRepo interface {
	ListByUseCase(ctx context.Context, useCaseID int64) ([]*domain.ProgressUpdate, error)
}

type PrioritizationRepo interface {
	// Current returns the live row: the one with the highest id.
	Current(ctx context.Context, useCaseID int64) (*domain.Prioritization, error)
}
