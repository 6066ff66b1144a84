package ports

import (
	"context"

	"github.com/aretw0/bisim/pkg/domain"
)

// Refiner is the engine surface used by transport adapters (HTTP, MCP).
type Refiner interface {
	// Refine computes the coarsest stable partition of ts refining initial (nil: one block).
	Refine(ctx context.Context, ts *domain.TransitionSystem, initial domain.Partitioning) (*domain.Result, error)

	// RefineNamed is Refine with the graph name recorded on the stored result.
	RefineNamed(ctx context.Context, graph string, ts *domain.TransitionSystem, initial domain.Partitioning) (*domain.Result, error)

	// RefineGraph loads a named graph, refines it and persists the result if a store is configured.
	RefineGraph(ctx context.Context, name string) (*domain.Result, error)

	// Graphs lists the graphs available from the loader.
	Graphs(ctx context.Context) ([]string, error)

	// Graph loads a named graph.
	Graph(ctx context.Context, name string) (*domain.TransitionSystem, error)

	// Result retrieves a stored result.
	Result(ctx context.Context, id string) (*domain.Result, error)
}
