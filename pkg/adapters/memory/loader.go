package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/bisim/pkg/domain"
)

// Loader implements ports.GraphLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	graphs   map[string]*domain.TransitionSystem
	initials map[string]domain.Partitioning
}

// NewLoader creates an empty in-memory loader.
func NewLoader() *Loader {
	return &Loader{
		graphs:   make(map[string]*domain.TransitionSystem),
		initials: make(map[string]domain.Partitioning),
	}
}

// NewFromSystems creates a loader serving the given named systems.
// Every system must satisfy the total-target invariant.
func NewFromSystems(graphs map[string]*domain.TransitionSystem) (*Loader, error) {
	l := NewLoader()
	for name, ts := range graphs {
		if err := l.Register(name, ts, nil); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Register adds or replaces a named graph with an optional initial partition.
func (l *Loader) Register(name string, ts *domain.TransitionSystem, initial domain.Partitioning) error {
	if name == "" {
		return fmt.Errorf("graph missing name")
	}
	if ts == nil {
		return fmt.Errorf("graph %s: nil transition system", name)
	}
	if err := ts.Validate(); err != nil {
		return fmt.Errorf("graph %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.graphs[name] = ts
	if initial != nil {
		l.initials[name] = initial.Clone()
	} else {
		delete(l.initials, name)
	}
	return nil
}

// Load returns the named graph.
func (l *Loader) Load(ctx context.Context, name string) (*domain.TransitionSystem, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ts, ok := l.graphs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
	}
	return ts, nil
}

// Initial returns the initial partition registered for name, if any.
func (l *Loader) Initial(ctx context.Context, name string) (domain.Partitioning, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.graphs[name]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
	}
	if p, ok := l.initials[name]; ok {
		return p.Clone(), nil
	}
	return nil, nil
}

// List returns all graph names in ascending order.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.graphs))
	for name := range l.graphs {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}
