package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/repository"
)

type stakeholderService struct {
	exec         *batch.Executor
	dialect      db.Dialect
	stakeholders repository.StakeholderRepo
	useCases     repository.UseCaseRepo
	observer     UseCaseObserver
}

func NewStakeholderService(exec *batch.Executor, dialect db.Dialect, stakeholders repository.StakeholderRepo, useCases repository.UseCaseRepo, observers ...UseCaseObserver) StakeholderService {
	return &stakeholderService{
		exec:         exec,
		dialect:      dialect,
		stakeholders: stakeholders,
		useCases:     useCases,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *stakeholderService) UpsertStakeholders(ctx context.Context, req app.StakeholderBatchRequest) (res *app.StakeholderBatchResult, err error) {
	fields := newBatchFields(req.UseCaseID, len(req.Stakeholders))
	defer observe(ctx, s.observer, "stakeholder.upsert", time.Now(), fields.fields, &err)

	stakeholders := append([]domain.Stakeholder(nil), req.Stakeholders...)
	items := make([]batch.Item, len(stakeholders))
	for i := range stakeholders {
		st := &stakeholders[i]
		if err := st.Validate(); err != nil {
			return nil, batch.Validationf(i, "%v", err)
		}
		items[i] = batch.Item{
			ID:             st.ID,
			Key:            []any{st.RoleID, st.Email},
			Payload:        []any{""},
			EditorFallback: st.Email,
		}
	}

	result, err := s.exec.Execute(ctx, batch.Request{
		ParentID: req.UseCaseID,
		Items:    items,
		Editor:   normalizeEditor(req.Editor),
		Prepare:  s.resolveRoleNames,
	})
	if err != nil {
		return nil, err
	}

	for i, it := range result.Items {
		stakeholders[i].ID = it.ID
		stakeholders[i].UseCaseID = req.UseCaseID
		stakeholders[i].RoleName, _ = it.Payload[0].(string)
		stakeholders[i].Audit = toAudit(it.Audit)
	}
	res = &app.StakeholderBatchResult{BatchCounts: countsOf(result), Stakeholders: stakeholders}
	fields.set(res.BatchCounts)
	return res, nil
}

// resolveRoleNames copies each role's name from the role mapping, inside the
// batch transaction.
func (s *stakeholderService) resolveRoleNames(ctx context.Context, tx db.DBTX, items []batch.Item) error {
	roles := repository.NewSQLRoleRepo(tx, s.dialect)
	names := make(map[int64]string)
	for i := range items {
		roleID := items[i].Key[0].(int64)
		name, ok := names[roleID]
		if !ok {
			role, err := roles.GetByID(ctx, roleID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				return batch.NotFound("resolve role", fmt.Errorf("role %d: %w", roleID, domain.ErrUnknownRole))
			case err != nil:
				return err
			case !role.Active:
				return batch.NotFound("resolve role", fmt.Errorf("role %d (%s): %w", roleID, role.RoleName, domain.ErrUnknownRole))
			}
			name = role.RoleName
			names[roleID] = name
		}
		items[i].Payload[0] = name
	}
	return nil
}

func (s *stakeholderService) ListStakeholders(ctx context.Context, useCaseID int64) ([]*domain.Stakeholder, error) {
	if err := ensureUseCase(ctx, s.useCases, useCaseID); err != nil {
		return nil, err
	}
	return s.stakeholders.ListByUseCase(ctx, useCaseID)
}
