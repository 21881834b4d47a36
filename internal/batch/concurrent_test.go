package batch

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/testutil"
)

// TestConcurrentAllocation_NoDuplicateIDs runs many manual-mode writers at
// once. Every batch needs k fresh ids; the union over all batches must have
// no duplicates and exactly sum(k) members.
func TestConcurrentAllocation_NoDuplicateIDs(t *testing.T) {
	store := testutil.NewFileTestStore(t, "updates")
	parentA := testutil.SeedUseCase(t, store, "writer a")
	parentB := testutil.SeedUseCase(t, store, "writer b")
	ex, err := NewExecutor(store, updatesEntity)
	require.NoError(t, err)

	const writers = 8
	const rounds = 3

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ids   []int64
		want  int
		errCh = make(chan error, writers*rounds)
	)
	for w := 0; w < writers; w++ {
		k := w%4 + 1
		want += k * rounds
		parent := parentA
		if w%2 == 1 {
			parent = parentB
		}
		wg.Add(1)
		go func(w, k int, parent int64) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				items := make([]Item, k)
				for i := range items {
					items[i] = noteItem(fmt.Sprintf("writer %d round %d note %d", w, r, i))
				}
				res, err := ex.Execute(context.Background(), Request{ParentID: parent, Editor: "w@example.com", Items: items})
				if err != nil {
					errCh <- err
					return
				}
				mu.Lock()
				for _, it := range res.Items {
					ids = append(ids, it.ID)
				}
				mu.Unlock()
			}
		}(w, k, parent)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, want)

	total := testutil.CountRows(t, store, "updates", parentA) + testutil.CountRows(t, store, "updates", parentB)
	assert.Equal(t, want, total)
}

// TestConcurrentUpsert_KeepsNaturalKeysUnique has every writer upsert the
// same three phases. Whatever the interleaving, the parent ends with one
// row per phase.
func TestConcurrentUpsert_KeepsNaturalKeysUnique(t *testing.T) {
	for _, manual := range [][]string{nil, {"plan"}} {
		name := "identity"
		if manual != nil {
			name = "manual"
		}
		t.Run(name, func(t *testing.T) {
			store := testutil.NewFileTestStore(t, manual...)
			parent := testutil.SeedUseCase(t, store, "shared plan")
			ex := newPlanExecutor(t, store)

			const writers = 6
			var wg sync.WaitGroup
			errs := make([]error, writers)
			for w := 0; w < writers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					end := fmt.Sprintf("2025-0%d-28", w+1)
					_, errs[w] = ex.Execute(context.Background(), Request{
						ParentID: parent,
						Editor:   fmt.Sprintf("w%d@example.com", w),
						Items:    []Item{planItem(1, "2025-01-01", end), planItem(2, "", end), planItem(3, "", end)},
					})
				}(w)
			}
			wg.Wait()
			for _, err := range errs {
				require.NoError(t, err)
			}

			rows := readPlanRows(t, store, parent)
			require.Len(t, rows, 3)
			// All three rows were last written by the same batch.
			assert.Equal(t, rows[0].End, rows[1].End)
			assert.Equal(t, rows[0].Editor, rows[2].Editor)
		})
	}
}

// TestConcurrentAllocator_Direct exercises IDAllocator without the executor:
// writers allocate inside their own transaction and insert the ids they got.
func TestConcurrentAllocator_Direct(t *testing.T) {
	store := testutil.NewFileTestStore(t, "plan")
	parent := testutil.SeedUseCase(t, store, "direct")
	alloc := NewIDAllocator(store.Dialect)
	uow := db.NewSQLUnitOfWork(store.DB)

	const writers = 5
	var wg sync.WaitGroup
	got := make([][]int64, writers)
	errs := make([]error, writers)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			errs[w] = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
				ids, err := alloc.Allocate(ctx, tx, "plan", 2)
				if err != nil {
					return err
				}
				for i, id := range ids {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO "plan" (id, usecaseid, usecasephaseid, created, modified) VALUES (?, ?, ?, '', '')`,
						id, parent, w*10+i); err != nil {
						return err
					}
				}
				got[w] = ids
				return nil
			})
		}(w)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for w := range got {
		require.NoError(t, errs[w])
		for _, id := range got[w] {
			assert.False(t, seen[id], "id %d assigned twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, writers*2)
	assert.Equal(t, writers*2, testutil.CountRows(t, store, "plan", parent))
}
