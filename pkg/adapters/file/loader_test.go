package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/bisim/pkg/adapters/file"
	"github.com/aretw0/bisim/pkg/domain"
	contract "github.com/aretw0/bisim/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestFileLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "silent.yaml", `
transitions:
  - {from: A, to: "A'", action: tau}
  - {from: "A'", to: "A''", action: x}
  - {from: B, to: "B'", action: x}
states: ["A''", "B'"]
`)
	writeFile(t, dir, "other.json", `{"name":"pair","states":["A","B"],"transitions":[]}`)
	writeFile(t, dir, "README.md", "not a graph")
	writeFile(t, dir, "bisim.yaml", "version: \"1.0\"\nstore: {backend: file}\n")

	silent := domain.NewTransitionSystem()
	silent.AddTransition("A", domain.Silent(), "A'")
	silent.AddTransition("A'", domain.Visible("x"), "A''")
	silent.AddTransition("B", domain.Visible("x"), "B'")

	pair := domain.NewTransitionSystem()
	pair.AddState("A")
	pair.AddState("B")

	contract.GraphLoaderContractTest(t, file.NewLoader(dir), map[string]*domain.TransitionSystem{
		"silent": silent,
		"pair":   pair,
	})
}

func TestFileLoader_SingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yml", "name: solo\nstates: [a]\ntransitions: []\ninitial: {a: 4}\n")

	loader := file.NewLoader(filepath.Join(dir, "one.yml"))
	names, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, names)

	initial, err := loader.Initial(context.Background(), "solo")
	require.NoError(t, err)
	assert.Equal(t, domain.Partitioning{"a": 4}, initial)
}

func TestFileLoader_DetectsCollisions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: same\ntransitions: []\n")
	writeFile(t, dir, "b.yaml", "name: same\ntransitions: []\n")

	_, err := file.NewLoader(dir).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestFileLoader_TransitionsOnlyDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "chain.yaml", "transitions:\n  - {from: a, to: b, action: tau}\n  - {from: b, to: c, action: x}\n")

	ts, err := file.NewLoader(dir).Load(context.Background(), "chain")
	require.NoError(t, err)
	assert.Equal(t, []domain.State{"a", "b", "c"}, ts.States())
	assert.Equal(t, 2, ts.NumTransitions())
	assert.NoError(t, ts.Validate())
}

func TestFileLoader_MissingDirectory(t *testing.T) {
	loader := file.NewLoader(filepath.Join(t.TempDir(), "absent"))

	names, err := loader.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = loader.Load(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}
