package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/bisim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	resultID := "contract-test-result-" + time.Now().Format("20060102150405")

	newResult := func(id string) *domain.Result {
		return &domain.Result{
			ID:        id,
			Graph:     "contract",
			Partition: domain.Partitioning{"a": 0, "b": 0, "c": 1},
			Rounds:    1,
			Splits:    1,
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		result := newResult(resultID)
		result.Trace = []domain.RoundTrace{{
			Round:  1,
			Blocks: 1,
			Conflicts: []domain.Conflict{{
				Block:    0,
				Splitter: domain.Observation{Label: domain.Visible("x"), Block: 0},
				NewBlock: 1,
			}},
		}}

		err := store.Save(ctx, result)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, resultID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, result.Graph, loaded.Graph)
		assert.Equal(t, result.Partition, loaded.Partition)
		assert.Equal(t, result.Rounds, loaded.Rounds)
		assert.True(t, result.CreatedAt.Equal(loaded.CreatedAt))
		require.Len(t, loaded.Trace, 1)
		assert.Equal(t, result.Trace[0].Conflicts, loaded.Trace[0].Conflicts)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, resultID)
		require.NoError(t, err)
		loaded.Partition["a"] = 42

		again, err := store.Load(ctx, resultID)
		require.NoError(t, err)
		assert.Equal(t, domain.PartitionID(0), again.Partition["a"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+resultID)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newResult(resultID))
		require.NoError(t, err)

		err = store.Delete(ctx, resultID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, resultID)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")

		assert.NoError(t, store.Delete(ctx, resultID), "Delete of a missing result should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := resultID + "-1"
		id2 := resultID + "-2"
		_ = store.Save(ctx, newResult(id1))
		_ = store.Save(ctx, newResult(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
