package ports

import (
	"context"

	"github.com/aretw0/bisim/pkg/domain"
)

// ResultStore defines the interface for persisting refinement results.
type ResultStore interface {
	// Save persists the result under result.ID.
	Save(ctx context.Context, result *domain.Result) error

	// Load retrieves the result for a given ID.
	// Returns domain.ErrResultNotFound if the result does not exist.
	Load(ctx context.Context, id string) (*domain.Result, error)

	// Delete removes the result for a given ID. Deleting a missing result is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored results.
	List(ctx context.Context) ([]string, error)
}
