package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/importer"
)

type importService struct {
	plans        PlanService
	stakeholders StakeholderService
	updates      ProgressUpdateService
	prioritize   PrioritizeService
	observer     UseCaseObserver
}

func NewImportService(
	plans PlanService,
	stakeholders StakeholderService,
	updates ProgressUpdateService,
	prioritize PrioritizeService,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		plans:        plans,
		stakeholders: stakeholders,
		updates:      updates,
		prioritize:   prioritize,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, batch.Validationf(-1, "loading import file: %v", err)
	}
	return s.Import(ctx, schema)
}

// Import validates the whole file, then applies stakeholders, plan,
// prioritization and updates in that order. Each section commits on its
// own; the result reports what was applied before a failure.
func (s *importService) Import(ctx context.Context, schema *importer.ImportSchema) (res *app.ImportResult, err error) {
	fields := map[string]any{"use_case_id": schema.UseCaseID}
	defer observe(ctx, s.observer, "import", time.Now(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	reqs := importer.Convert(schema)
	res = &app.ImportResult{UseCaseID: schema.UseCaseID}

	if reqs.Stakeholders != nil {
		out, err := s.stakeholders.UpsertStakeholders(ctx, *reqs.Stakeholders)
		if err != nil {
			return res, fmt.Errorf("importing stakeholders: %w", err)
		}
		res.Stakeholders = out.BatchCounts
	}
	if reqs.Plan != nil {
		out, err := s.plans.UpsertPlan(ctx, *reqs.Plan)
		if err != nil {
			return res, fmt.Errorf("importing plan: %w", err)
		}
		res.Plan = out.BatchCounts
	}
	if reqs.Prioritize != nil {
		if _, err := s.prioritize.Prioritize(ctx, *reqs.Prioritize); err != nil {
			return res, fmt.Errorf("importing prioritization: %w", err)
		}
		res.Prioritized = true
	}
	for i, u := range reqs.Updates {
		if _, err := s.updates.AddUpdate(ctx, u); err != nil {
			return res, fmt.Errorf("importing update %d: %w", i, err)
		}
		res.Updates++
	}
	fields["updates"] = res.Updates
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return batch.Validationf(-1, "%w", errors.New(msg))
}
