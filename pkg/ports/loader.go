package ports

import (
	"context"

	"github.com/aretw0/bisim/pkg/domain"
)

// GraphLoader defines how the engine retrieves transition systems.
// This allows the storage layer (files, Loam, Memory) to be decoupled.
type GraphLoader interface {
	// Load returns the transition system stored under name.
	// Returns domain.ErrGraphNotFound if there is no such graph.
	// Implementations validate the total-target invariant before returning.
	Load(ctx context.Context, name string) (*domain.TransitionSystem, error)

	// List returns the names of all available graphs in ascending order.
	List(ctx context.Context) ([]string, error)
}

// InitialPartitioner is implemented by loaders whose documents can carry an initial
// partition alongside the transition system.
type InitialPartitioner interface {
	// Initial returns the initial partition declared for name, or nil if none is declared.
	Initial(ctx context.Context, name string) (domain.Partitioning, error)
}
