package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/testutil"
)

type testServices struct {
	store        *db.Store
	execs        *Executors
	plans        PlanService
	stakeholders StakeholderService
	updates      ProgressUpdateService
	prioritize   PrioritizeService
	modes        SchemaModeService
	imports      ImportService
	events       *recordingUseCaseObserver
}

// newTestServices wires every service over a fresh in-memory store. Tables
// named in manual get application-assigned ids.
func newTestServices(t *testing.T, manual ...string) *testServices {
	t.Helper()
	store := testutil.NewTestStore(t, manual...)
	clock := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	events := &recordingUseCaseObserver{}
	svcs, err := NewServices(store, []batch.Option{batch.WithClock(tick)}, events)
	require.NoError(t, err)

	return &testServices{
		store:        store,
		execs:        svcs.Executors,
		plans:        svcs.Plan,
		stakeholders: svcs.Stakeholders,
		updates:      svcs.Updates,
		prioritize:   svcs.Prioritize,
		modes:        svcs.Modes,
		imports:      svcs.Import,
		events:       events,
	}
}

type recordingUseCaseObserver struct {
	events []UseCaseEvent
}

func (r *recordingUseCaseObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	r.events = append(r.events, ev)
}

func (r *recordingUseCaseObserver) last() UseCaseEvent {
	if len(r.events) == 0 {
		return UseCaseEvent{}
	}
	return r.events[len(r.events)-1]
}
