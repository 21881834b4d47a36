package service

import (
	"context"
	"strings"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/app"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/repository"
)

// normalizeEditor trims the caller identity; an all-blank editor counts as
// not supplied.
func normalizeEditor(editor string) string {
	return strings.TrimSpace(editor)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableFlag stores a flag as 0/1, the way rolemapping.isactive is kept.
func nullableFlag(v *bool) any {
	if v == nil {
		return nil
	}
	if *v {
		return int64(1)
	}
	return int64(0)
}

func nullableFloat64(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func toAudit(a batch.Audit) domain.Audit {
	return domain.Audit{Created: a.Created, Modified: a.Modified, EditorEmail: a.EditorEmail}
}

func countsOf(res *batch.Result) app.BatchCounts {
	c := app.BatchCounts{Mode: res.Mode.String()}
	for _, it := range res.Items {
		if it.Op == batch.OpInsert {
			c.Inserted++
		} else {
			c.Updated++
		}
	}
	return c
}

// batchFields collects the log fields of one batch use case.
type batchFields struct {
	fields map[string]any
}

func newBatchFields(useCaseID int64, items int) *batchFields {
	return &batchFields{fields: map[string]any{"use_case_id": useCaseID, "items": items}}
}

func (c *batchFields) set(counts app.BatchCounts) {
	c.fields["mode"] = counts.Mode
	c.fields["inserted"] = counts.Inserted
	c.fields["updated"] = counts.Updated
}

// ensureUseCase turns a missing parent into a not-found error for reads.
func ensureUseCase(ctx context.Context, useCases repository.UseCaseRepo, id int64) error {
	_, err := useCases.GetByID(ctx, id)
	return err
}
