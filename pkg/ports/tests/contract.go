package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// expected maps every graph name the loader should serve to its transition system.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, expected map[string]*domain.TransitionSystem) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Load (Success)
	t.Run("Load_Success", func(t *testing.T) {
		for name, want := range expected {
			got, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading graph %s: %v", name, err)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("graph %s violates the total-target invariant: %v", name, err)
			}
			if !equalStates(got.States(), want.States()) {
				t.Errorf("states mismatch for %s. got %v, want %v", name, got.States(), want.States())
			}
			if !equalTransitions(got.Transitions(), want.Transitions()) {
				t.Errorf("transitions mismatch for %s. got %v, want %v", name, got.Transitions(), want.Transitions())
			}
		}
	})

	// 2. Test Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-graph")
		if !errors.Is(err, domain.ErrGraphNotFound) {
			t.Errorf("expected ErrGraphNotFound for non-existent graph, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing graphs: %v", err)
		}

		if len(names) != len(expected) {
			t.Errorf("expected %d graphs, got %d", len(expected), len(names))
		}

		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("list is not sorted: %v", names)
				break
			}
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range expected {
			if !lookup[name] {
				t.Errorf("graph %s missing from list", name)
			}
		}
	})
}

func equalStates(a, b []domain.State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalTransitions(a, b []domain.Transition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
