package service

import (
	"fmt"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

// Column mappings for every child table. Payload order here is the order
// services fill batch.Item.Payload in.
var (
	PlanEntity = batch.Entity{
		Name:           "plan",
		Table:          "plan",
		ParentTable:    "usecases",
		ParentColumn:   "usecaseid",
		KeyColumns:     []string{"usecasephaseid"},
		PayloadColumns: []string{"startdate", "enddate"},
	}

	StakeholderEntity = batch.Entity{
		Name:           "stakeholder",
		Table:          "stakeholder",
		ParentTable:    "usecases",
		ParentColumn:   "usecaseid",
		KeyColumns:     []string{"roleid", "stakeholder_email"},
		PayloadColumns: []string{"rolename"},
	}

	UpdateEntity = batch.Entity{
		Name:           "updates",
		Table:          "updates",
		ParentTable:    "usecases",
		ParentColumn:   "usecaseid",
		PayloadColumns: []string{"meaningfulupdate", "roleid", "usecasephaseid", "usecasestatusid"},
		AppendOnly:     true,
	}

	// PrioritizationEntity has no key columns: one logical row per use case.
	PrioritizationEntity = batch.Entity{
		Name:           "prioritization",
		Table:          "prioritization",
		ParentTable:    "usecases",
		ParentColumn:   "usecaseid",
		PayloadColumns: []string{
			"reach", "impact", "confidence", "effort", "ricescore", "priority",
			"aigallerydisplay", "sltreporting", "totaluserbase", "timespanid", "reportingfrequencyid",
		},
	}
)

// ChildTables lists the tables written through the batch executor.
func ChildTables() []string {
	return []string{PlanEntity.Table, StakeholderEntity.Table, UpdateEntity.Table, PrioritizationEntity.Table}
}

// Executors holds one executor per child entity, sharing a schema-mode cache.
type Executors struct {
	Resolver       *batch.SchemaModeResolver
	Plan           *batch.Executor
	Stakeholder    *batch.Executor
	Update         *batch.Executor
	Prioritization *batch.Executor
}

// NewExecutors checks every entity mapping and builds its executor.
func NewExecutors(store *db.Store, opts ...batch.Option) (*Executors, error) {
	resolver := batch.NewSchemaModeResolver(store.Dialect)
	opts = append([]batch.Option{batch.WithResolver(resolver)}, opts...)

	build := func(e batch.Entity) (*batch.Executor, error) {
		ex, err := batch.NewExecutor(store, e, opts...)
		if err != nil {
			return nil, fmt.Errorf("building %s executor: %w", e.Name, err)
		}
		return ex, nil
	}

	var (
		x   = &Executors{Resolver: resolver}
		err error
	)
	if x.Plan, err = build(PlanEntity); err != nil {
		return nil, err
	}
	if x.Stakeholder, err = build(StakeholderEntity); err != nil {
		return nil, err
	}
	if x.Update, err = build(UpdateEntity); err != nil {
		return nil, err
	}
	if x.Prioritization, err = build(PrioritizationEntity); err != nil {
		return nil, err
	}
	return x, nil
}
