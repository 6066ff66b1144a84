package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/bisim/pkg/adapters/file"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunResultStoreContract(t, store)
}

func TestFileStore_AtomicOverwrite(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	first := &domain.Result{ID: "run", Partition: domain.Partitioning{"a": 0}}
	second := &domain.Result{ID: "run", Partition: domain.Partitioning{"a": 7}, Rounds: 3}

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Rounds)
	assert.Equal(t, domain.PartitionID(7), loaded.Partition["a"])

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-half-123.json"), []byte("{"), 0644))
	require.NoError(t, store.Save(ctx, &domain.Result{ID: "b", Partition: domain.Partitioning{}}))
	require.NoError(t, store.Save(ctx, &domain.Result{ID: "a", Partition: domain.Partitioning{}}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "absent"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_EmptyID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &domain.Result{}))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
