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

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestPrioritizeService_CreateThenPatch(t *testing.T) {
	for _, manual := range [][]string{nil, {"prioritization"}} {
		s := newTestServices(t, manual...)
		ctx := context.Background()
		uc := testutil.SeedUseCase(t, s.store, "rice")

		res, err := s.prioritize.Prioritize(ctx, app.PrioritizeRequest{
			UseCaseID: uc,
			Editor:    "a@example.com",
			Patch:     domain.PrioritizationPatch{Reach: f64(100), Impact: f64(2), Confidence: f64(0.5), Effort: f64(4)},
		})
		require.NoError(t, err)
		assert.True(t, res.Created)
		require.NotNil(t, res.Prioritization.RICEScore)
		assert.InDelta(t, 25.0, *res.Prioritization.RICEScore, 1e-9)

		res2, err := s.prioritize.Prioritize(ctx, app.PrioritizeRequest{
			UseCaseID: uc,
			Patch:     domain.PrioritizationPatch{Effort: f64(2), Priority: i64(1)},
		})
		require.NoError(t, err)
		assert.False(t, res2.Created)
		assert.Equal(t, res.Prioritization.ID, res2.Prioritization.ID)

		current, err := s.prioritize.CurrentPrioritization(ctx, uc)
		require.NoError(t, err)
		assert.Equal(t, 100.0, *current.Reach, "fields outside the patch are kept")
		assert.InDelta(t, 50.0, *current.RICEScore, 1e-9)
		assert.Equal(t, int64(1), *current.Priority)
		assert.Equal(t, "a@example.com", current.EditorEmail)
		assert.Equal(t, 1, testutil.CountRows(t, s.store, "prioritization", uc))
	}
}

func TestPrioritizeService_LegacyDuplicatesUpdateHighestID(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	uc := testutil.SeedUseCase(t, s.store, "rice")
	for _, reach := range []int{1, 2} {
		_, err := s.store.DB.Exec(`INSERT INTO prioritization (usecaseid, reach, created, modified)
			VALUES (?, ?, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`, uc, reach)
		require.NoError(t, err)
	}

	res, err := s.prioritize.Prioritize(ctx, app.PrioritizeRequest{UseCaseID: uc, Patch: domain.PrioritizationPatch{Priority: i64(3)}})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 2.0, *res.Prioritization.Reach)

	current, err := s.prioritize.CurrentPrioritization(ctx, uc)
	require.NoError(t, err)
	assert.Equal(t, res.Prioritization.ID, current.ID)
	assert.Equal(t, int64(3), *current.Priority)
	assert.Equal(t, 2, testutil.CountRows(t, s.store, "prioritization", uc))
}

func TestPrioritizeService_Validation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.prioritize.Prioritize(ctx, app.PrioritizeRequest{UseCaseID: 1})
	assert.ErrorIs(t, err, batch.ErrValidation)

	_, err = s.prioritize.Prioritize(ctx, app.PrioritizeRequest{UseCaseID: 1, Patch: domain.PrioritizationPatch{Effort: f64(-2)}})
	assert.ErrorIs(t, err, batch.ErrValidation)

	_, err = s.prioritize.CurrentPrioritization(ctx, 1)
	assert.ErrorIs(t, err, batch.ErrNotFound)
}

func TestSchemaModeService(t *testing.T) {
	s := newTestServices(t, "plan")
	ctx := context.Background()

	mode, err := s.modes.TableMode(ctx, "plan")
	require.NoError(t, err)
	assert.Equal(t, "manual", mode)

	mode, err = s.modes.TableMode(ctx, "stakeholder")
	require.NoError(t, err)
	assert.Equal(t, "identity", mode)

	_, err = s.modes.TableMode(ctx, "usecases")
	assert.ErrorIs(t, err, batch.ErrValidation, "only child tables are reported")
	assert.ElementsMatch(t, []string{"plan", "stakeholder", "updates", "prioritization"}, s.modes.Tables())
}

func TestSchemaModeService_CheckTables(t *testing.T) {
	s := newTestServices(t)
	require.NoError(t, s.modes.CheckTables(context.Background()))

	broken := newTestServices(t)
	_, err := broken.store.DB.Exec(`DROP TABLE updates`)
	require.NoError(t, err)
	err = broken.modes.CheckTables(context.Background())
	assert.ErrorIs(t, err, batch.ErrSchemaMode)
}

func TestPrioritizeService_ReportingSettings(t *testing.T) {
	for _, manual := range [][]string{nil, {"prioritization"}} {
		s := newTestServices(t, manual...)
		ctx := context.Background()
		uc := testutil.SeedUseCase(t, s.store, "gallery")
		yes, no := true, false

		_, err := s.prioritize.Prioritize(ctx, app.PrioritizeRequest{
			UseCaseID: uc,
			Editor:    "a@example.com",
			Patch: domain.PrioritizationPatch{
				DisplayInGallery: &yes,
				SLTReporting:     &no,
				TotalUserBase:    i64(1200),
				TimespanID:       i64(2),
			},
		})
		require.NoError(t, err)

		_, err = s.prioritize.Prioritize(ctx, app.PrioritizeRequest{
			UseCaseID: uc,
			Patch:     domain.PrioritizationPatch{ReportingFrequencyID: i64(4), DisplayInGallery: &no},
		})
		require.NoError(t, err)

		current, err := s.prioritize.CurrentPrioritization(ctx, uc)
		require.NoError(t, err)
		require.NotNil(t, current.DisplayInGallery)
		assert.False(t, *current.DisplayInGallery)
		require.NotNil(t, current.SLTReporting)
		assert.False(t, *current.SLTReporting)
		assert.Equal(t, int64(1200), *current.TotalUserBase, "fields outside the patch are kept")
		assert.Equal(t, int64(2), *current.TimespanID)
		assert.Equal(t, int64(4), *current.ReportingFrequencyID)
		assert.Nil(t, current.Reach)
	}
}

func TestPrioritizeService_RejectsBadReportingIDs(t *testing.T) {
	s := newTestServices(t)
	uc := testutil.SeedUseCase(t, s.store, "gallery")

	_, err := s.prioritize.Prioritize(context.Background(), app.PrioritizeRequest{
		UseCaseID: uc,
		Patch:     domain.PrioritizationPatch{TimespanID: i64(0)},
	})
	assert.ErrorIs(t, err, batch.ErrValidation)
	assert.Equal(t, 0, testutil.CountRows(t, s.store, "prioritization", uc))
}
