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

type progressUpdateService struct {
	exec     *batch.Executor
	dialect  db.Dialect
	updates  repository.UpdateRepo
	useCases repository.UseCaseRepo
	observer UseCaseObserver
}

func NewProgressUpdateService(exec *batch.Executor, dialect db.Dialect, updates repository.UpdateRepo, useCases repository.UseCaseRepo, observers ...UseCaseObserver) ProgressUpdateService {
	return &progressUpdateService{
		exec:     exec,
		dialect:  dialect,
		updates:  updates,
		useCases: useCases,
		observer: useCaseObserverOrNoop(observers),
	}
}

// AddUpdate appends a note. The editor must be a stakeholder of the use
// case; their role and the use case's current phase and status are
// snapshotted onto the note in the same transaction.
func (s *progressUpdateService) AddUpdate(ctx context.Context, req app.ProgressUpdateRequest) (out *domain.ProgressUpdate, err error) {
	fields := map[string]any{"use_case_id": req.UseCaseID}
	defer observe(ctx, s.observer, "update.add", time.Now(), fields, &err)

	u := &domain.ProgressUpdate{UseCaseID: req.UseCaseID, Text: req.Text}
	editor := normalizeEditor(req.Editor)
	if err := u.Validate(); err != nil {
		return nil, batch.Validationf(0, "%v", err)
	}
	if editor == "" {
		return nil, batch.Validationf(0, "editorEmail is required")
	}

	prepare := func(ctx context.Context, tx db.DBTX, items []batch.Item) error {
		st, err := repository.NewSQLStakeholderRepo(tx, s.dialect).FindByEmail(ctx, req.UseCaseID, editor)
		if errors.Is(err, repository.ErrNotFound) {
			return batch.NotFound("resolve stakeholder", fmt.Errorf("%s: %w", editor, domain.ErrNotStakeholder))
		}
		if err != nil {
			return err
		}
		uc, err := repository.NewSQLUseCaseRepo(tx, s.dialect).GetByID(ctx, req.UseCaseID)
		if err != nil {
			return err
		}
		if uc.PhaseID == nil || uc.StatusID == nil {
			return batch.Validationf(0, "use case %d: %w", req.UseCaseID, domain.ErrPhaseUnresolved)
		}
		u.RoleID, u.PhaseID, u.StatusID = &st.RoleID, uc.PhaseID, uc.StatusID
		items[0].Payload = []any{u.Text, st.RoleID, *uc.PhaseID, *uc.StatusID}
		return nil
	}

	result, err := s.exec.Execute(ctx, batch.Request{
		ParentID: req.UseCaseID,
		Items:    []batch.Item{{Payload: []any{u.Text, nil, nil, nil}}},
		Editor:   editor,
		Prepare:  prepare,
	})
	if err != nil {
		return nil, err
	}
	u.ID = result.Items[0].ID
	u.Audit = toAudit(result.Items[0].Audit)
	fields["update_id"] = u.ID
	return u, nil
}

func (s *progressUpdateService) ListUpdates(ctx context.Context, useCaseID int64) ([]*domain.ProgressUpdate, error) {
	if err := ensureUseCase(ctx, s.useCases, useCaseID); err != nil {
		return nil, err
	}
	return s.updates.ListByUseCase(ctx, useCaseID)
}
