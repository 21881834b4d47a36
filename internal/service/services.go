package service

import (
	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/repository"
)

// Services bundles every use case over one store.
type Services struct {
	Executors    *Executors
	Plan         PlanService
	Stakeholders StakeholderService
	Updates      ProgressUpdateService
	Prioritize   PrioritizeService
	Modes        SchemaModeService
	Import       ImportService
}

// NewServices builds the executors and the services on top of them.
// batchOpts configure every executor; observers receive service events.
func NewServices(store *db.Store, batchOpts []batch.Option, observers ...UseCaseObserver) (*Services, error) {
	execs, err := NewExecutors(store, batchOpts...)
	if err != nil {
		return nil, err
	}
	useCases := repository.NewSQLUseCaseRepo(store.DB, store.Dialect)
	s := &Services{
		Executors:    execs,
		Plan:         NewPlanService(execs.Plan, repository.NewSQLPlanRepo(store.DB, store.Dialect), useCases, observers...),
		Stakeholders: NewStakeholderService(execs.Stakeholder, store.Dialect, repository.NewSQLStakeholderRepo(store.DB, store.Dialect), useCases, observers...),
		Updates:      NewProgressUpdateService(execs.Update, store.Dialect, repository.NewSQLUpdateRepo(store.DB, store.Dialect), useCases, observers...),
		Prioritize:   NewPrioritizeService(execs.Prioritization, store.Dialect, repository.NewSQLPrioritizationRepo(store.DB, store.Dialect), observers...),
		Modes:        NewSchemaModeService(execs.Resolver, store.DB),
	}
	s.Import = NewImportService(s.Plan, s.Stakeholders, s.Updates, s.Prioritize, observers...)
	return s, nil
}
