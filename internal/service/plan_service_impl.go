package service

import (
	"context"
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/repository"
)

type planService struct {
	exec     *batch.Executor
	plans    repository.PlanRepo
	useCases repository.UseCaseRepo
	observer UseCaseObserver
}

func NewPlanService(exec *batch.Executor, plans repository.PlanRepo, useCases repository.UseCaseRepo, observers ...UseCaseObserver) PlanService {
	return &planService{exec: exec, plans: plans, useCases: useCases, observer: useCaseObserverOrNoop(observers)}
}

func (s *planService) UpsertPlan(ctx context.Context, req app.PlanBatchRequest) (res *app.PlanBatchResult, err error) {
	fields := newBatchFields(req.UseCaseID, len(req.Entries))
	defer observe(ctx, s.observer, "plan.upsert", time.Now(), fields.fields, &err)

	entries := append([]domain.PlanEntry(nil), req.Entries...)
	items := make([]batch.Item, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, batch.Validationf(i, "%v", err)
		}
		items[i] = batch.Item{
			Key:     []any{entries[i].PhaseID},
			Payload: []any{nullableString(entries[i].StartDate), nullableString(entries[i].EndDate)},
		}
	}

	result, err := s.exec.Execute(ctx, batch.Request{
		ParentID: req.UseCaseID,
		Items:    items,
		Editor:   normalizeEditor(req.Editor),
	})
	if err != nil {
		return nil, err
	}

	for i, it := range result.Items {
		entries[i].ID = it.ID
		entries[i].UseCaseID = req.UseCaseID
		entries[i].Audit = toAudit(it.Audit)
	}
	res = &app.PlanBatchResult{BatchCounts: countsOf(result), Entries: entries}
	fields.set(res.BatchCounts)
	return res, nil
}

func (s *planService) ListPlan(ctx context.Context, useCaseID int64) ([]*domain.PlanEntry, error) {
	if err := ensureUseCase(ctx, s.useCases, useCaseID); err != nil {
		return nil, err
	}
	return s.plans.ListByUseCase(ctx, useCaseID)
}
