package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/testutil"
)

func TestPlanService_UpsertAndResubmit(t *testing.T) {
	for _, manual := range [][]string{nil, {"plan"}} {
		s := newTestServices(t, manual...)
		ctx := context.Background()
		uc := testutil.SeedUseCase(t, s.store, "plan", testutil.WithUseCaseID(42))

		res, err := s.plans.UpsertPlan(ctx, app.PlanBatchRequest{
			UseCaseID: uc,
			Editor:    " a@example.com ",
			Entries: []domain.PlanEntry{
				{PhaseID: 1, StartDate: "2025-01-01", EndDate: "2025-02-01"},
				{PhaseID: 2, StartDate: "2025-02-02", EndDate: "2025-03-01"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Inserted)
		assert.Equal(t, 0, res.Updated)
		for _, e := range res.Entries {
			assert.NotZero(t, e.ID)
			assert.Equal(t, uc, e.UseCaseID)
			assert.Equal(t, "a@example.com", e.EditorEmail)
			assert.Equal(t, e.Created, e.Modified)
		}

		res2, err := s.plans.UpsertPlan(ctx, app.PlanBatchRequest{
			UseCaseID: uc,
			Editor:    "a@example.com",
			Entries:   []domain.PlanEntry{{PhaseID: 1, StartDate: "2025-01-01", EndDate: "2025-02-15"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res2.Updated)
		assert.Equal(t, res.Entries[0].ID, res2.Entries[0].ID)

		list, err := s.plans.ListPlan(ctx, uc)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "2025-02-15", list[0].EndDate)
		assert.True(t, list[0].Modified.After(list[0].Created))
		assert.Equal(t, "2025-03-01", list[1].EndDate)
	}
}

func TestPlanService_ValidationNamesTheItem(t *testing.T) {
	s := newTestServices(t)
	uc := testutil.SeedUseCase(t, s.store, "plan")

	_, err := s.plans.UpsertPlan(context.Background(), app.PlanBatchRequest{
		UseCaseID: uc,
		Entries: []domain.PlanEntry{
			{PhaseID: 1, StartDate: "2025-01-01"},
			{PhaseID: 2, StartDate: "not a date"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, batch.ErrValidation)
	assert.Contains(t, err.Error(), "item 1")
	assert.Equal(t, 0, testutil.CountRows(t, s.store, "plan", uc))

	ev := s.events.last()
	assert.Equal(t, "plan.upsert", ev.Name)
	assert.False(t, ev.Success)
}

func TestPlanService_EmptyBatch(t *testing.T) {
	s := newTestServices(t)
	_, err := s.plans.UpsertPlan(context.Background(), app.PlanBatchRequest{UseCaseID: 1})
	assert.ErrorIs(t, err, batch.ErrValidation)
}

func TestPlanService_UnknownUseCase(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.plans.UpsertPlan(ctx, app.PlanBatchRequest{UseCaseID: 77, Entries: []domain.PlanEntry{{PhaseID: 1}}})
	assert.ErrorIs(t, err, batch.ErrNotFound)

	_, err = s.plans.ListPlan(ctx, 77)
	assert.ErrorIs(t, err, batch.ErrNotFound)
}

func TestPlanService_ReportsCounts(t *testing.T) {
	s := newTestServices(t)
	uc := testutil.SeedUseCase(t, s.store, "plan")

	_, err := s.plans.UpsertPlan(context.Background(), app.PlanBatchRequest{
		UseCaseID: uc,
		Entries:   []domain.PlanEntry{{PhaseID: 1}, {PhaseID: 1, StartDate: "2025-05-05"}},
	})
	require.NoError(t, err)

	ev := s.events.last()
	assert.True(t, ev.Success)
	assert.Equal(t, 1, ev.Fields["inserted"])
	assert.Equal(t, 1, ev.Fields["updated"])
	assert.Equal(t, "identity", ev.Fields["mode"])
}
