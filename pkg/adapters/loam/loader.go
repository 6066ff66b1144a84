package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/bisim/internal/compiler"
	"github.com/aretw0/bisim/internal/dto"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/loam"
)

// StateMetadata is the frontmatter decoded from every state document.
type StateMetadata = dto.StateMetadata

// Loader adapts a Loam repository to the GraphLoader interface.
// The whole repository is one graph: every document is a state and its
// frontmatter lists the outgoing transitions.
type Loader struct {
	Repo *loam.TypedRepository[StateMetadata]
	Name string
}

// New creates a new Loam adapter serving the repository under name.
func New(repo *loam.TypedRepository[StateMetadata], name string) *Loader {
	return &Loader{
		Repo: repo,
		Name: name,
	}
}

// Open initializes a read-only, strict Loam repository at path.
// The graph is named after the directory.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric frontmatter as json.Number; the loader never writes.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[StateMetadata](repo), filepath.Base(absPath)), nil
}

// Load reads every document of the repository and compiles the transition system.
func (l *Loader) Load(ctx context.Context, name string) (*domain.TransitionSystem, error) {
	if name != l.Name {
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
	}
	states, err := l.states(ctx)
	if err != nil {
		return nil, err
	}
	ts, _, err := compiler.CompileStates(l.Name, states)
	return ts, err
}

// Initial returns the partition declared through "block" frontmatter keys, or nil.
func (l *Loader) Initial(ctx context.Context, name string) (domain.Partitioning, error) {
	if name != l.Name {
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
	}
	states, err := l.states(ctx)
	if err != nil {
		return nil, err
	}
	_, initial, err := compiler.CompileStates(l.Name, states)
	return initial, err
}

// List returns the single graph served by this repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	return []string{l.Name}, nil
}

// states collects the metadata of every document keyed by normalized state ID.
func (l *Loader) states(ctx context.Context) (map[string]StateMetadata, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	states := make(map[string]StateMetadata, len(docs))
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: state '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		meta := doc.Data
		for i := range meta.Transitions {
			meta.Transitions[i].To = trimExtension(meta.Transitions[i].To)
		}
		states[id] = meta
	}
	return states, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
