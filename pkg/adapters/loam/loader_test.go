package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"

	"github.com/aretw0/bisim/internal/testutils"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteStates(t, tmpDir, map[string]string{
		"a.md": "---\ntransitions:\n  - to: b\n    action: tau\n---\nState A",
		"b.md": "---\ntransitions:\n  - to: c\n    action: x\n---\nState B",
		"c.md": "---\ntransitions: []\n---\nState C",
	})

	want := domain.NewTransitionSystem()
	want.AddTransition("a", domain.Silent(), "b")
	want.AddTransition("b", domain.Visible("x"), "c")

	loader := New(loam.NewTypedRepository[StateMetadata](repo), "chain")

	tests.GraphLoaderContractTest(t, loader, map[string]*domain.TransitionSystem{"chain": want})
}

func TestLoader_NormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"start.md": `---
id: start.md
transitions:
  - to: finish.md
    action: done
---
Hello`,
		"finish.json": `{
  "id": "finish.json",
  "transitions": []
}`,
		"implicit.md": `---
transitions:
  - to: start
---
ID is implied from filename`,
	}

	testutils.WriteStates(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[StateMetadata](repo), "g")

	ts, err := loader.Load(context.Background(), "g")
	require.NoError(t, err)
	assert.Equal(t, []domain.State{"finish", "implicit", "start"}, ts.States())

	edges, ok := ts.Edges("start")
	require.True(t, ok)
	assert.Equal(t, []domain.Edge{{To: "finish", Label: domain.Visible("done")}}, edges)
}

func TestLoader_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"one.md": "---\nid: same\n---\nOne",
		"two.md": "---\nid: same\n---\nTwo",
	}
	testutils.WriteStates(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[StateMetadata](repo), "g")

	_, err := loader.Load(context.Background(), "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_InitialBlocks(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"a.md": "---\nblock: 1\ntransitions:\n  - to: b\n---\nA",
		"b.md": "---\ntransitions: []\n---\nB",
	}
	testutils.WriteStates(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[StateMetadata](repo), "g")

	initial, err := loader.Initial(context.Background(), "g")
	require.NoError(t, err)
	assert.Equal(t, domain.Partitioning{"a": 1, "b": 0}, initial)
}

func TestLoader_DanglingTarget(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	testutils.WriteStates(t, tmpDir, map[string]string{
		"a.md": "---\ntransitions:\n  - to: ghost\n    action: x\n---\nA",
	})

	loader := New(loam.NewTypedRepository[StateMetadata](repo), "g")

	_, err := loader.Load(context.Background(), "g")
	assert.ErrorIs(t, err, domain.ErrMissingTarget)
}
