package service

import (
	"context"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/importer"
)

type PlanService = app.PlanUseCase

type StakeholderService = app.StakeholderUseCase

type ProgressUpdateService = app.ProgressUpdateUseCase

type PrioritizeService = app.PrioritizeUseCase

type SchemaModeService = app.SchemaModeUseCase

type ImportService interface {
	app.ImportUseCase
	Import(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error)
}
