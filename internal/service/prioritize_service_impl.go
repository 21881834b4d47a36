package service

import (
	"context"
	"errors"
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/repository"
)

type prioritizeService struct {
	exec            *batch.Executor
	dialect         db.Dialect
	prioritizations repository.PrioritizationRepo
	observer        UseCaseObserver
}

func NewPrioritizeService(exec *batch.Executor, dialect db.Dialect, prioritizations repository.PrioritizationRepo, observers ...UseCaseObserver) PrioritizeService {
	return &prioritizeService{
		exec:            exec,
		dialect:         dialect,
		prioritizations: prioritizations,
		observer:        useCaseObserverOrNoop(observers),
	}
}

// Prioritize merges the patch into the use case's live row, creating it
// when none exists. Fields missing from the patch keep their stored value.
func (s *prioritizeService) Prioritize(ctx context.Context, req app.PrioritizeRequest) (res *app.PrioritizeResult, err error) {
	fields := map[string]any{"use_case_id": req.UseCaseID}
	defer observe(ctx, s.observer, "prioritize.upsert", time.Now(), fields, &err)

	editor := normalizeEditor(req.Editor)
	if req.Patch.Empty() && editor == "" {
		return nil, batch.Validationf(-1, "at least one field is required")
	}
	if err := req.Patch.Validate(); err != nil {
		return nil, batch.Validationf(0, "%v", err)
	}

	var merged domain.Prioritization
	prepare := func(ctx context.Context, tx db.DBTX, items []batch.Item) error {
		current, err := repository.NewSQLPrioritizationRepo(tx, s.dialect).Current(ctx, req.UseCaseID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			merged = domain.Prioritization{}
		case err != nil:
			return err
		default:
			merged = *current
		}
		merged.Apply(req.Patch)
		items[0].Payload = []any{
			nullableFloat64(merged.Reach),
			nullableFloat64(merged.Impact),
			nullableFloat64(merged.Confidence),
			nullableFloat64(merged.Effort),
			nullableFloat64(merged.RICEScore),
			nullableInt64(merged.Priority),
			nullableFlag(merged.DisplayInGallery),
			nullableFlag(merged.SLTReporting),
			nullableInt64(merged.TotalUserBase),
			nullableInt64(merged.TimespanID),
			nullableInt64(merged.ReportingFrequencyID),
		}
		return nil
	}

	result, err := s.exec.Execute(ctx, batch.Request{
		ParentID: req.UseCaseID,
		Items:    []batch.Item{{Payload: make([]any, len(PrioritizationEntity.PayloadColumns))}},
		Editor:   editor,
		Prepare:  prepare,
	})
	if err != nil {
		return nil, err
	}
	it := result.Items[0]
	merged.ID = it.ID
	merged.UseCaseID = req.UseCaseID
	merged.Audit = toAudit(it.Audit)
	res = &app.PrioritizeResult{Prioritization: merged, Created: it.Op == batch.OpInsert}
	fields["created"] = res.Created
	return res, nil
}

func (s *prioritizeService) CurrentPrioritization(ctx context.Context, useCaseID int64) (*domain.Prioritization, error) {
	return s.prioritizations.Current(ctx, useCaseID)
}
