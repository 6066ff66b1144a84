package dsl

import (
	"fmt"

	"github.com/aretw0/bisim/pkg/adapters/memory"
	"github.com/aretw0/bisim/pkg/domain"
)

// Builder manages the transition system construction.
type Builder struct {
	ts      *domain.TransitionSystem
	initial domain.Partitioning
	states  map[domain.State]*StateBuilder
}

// New creates a new builder.
func New() *Builder {
	return &Builder{
		ts:     domain.NewTransitionSystem(),
		states: make(map[domain.State]*StateBuilder),
	}
}

// From declares a state and returns its builder.
// If the state already exists, it returns the existing builder.
func (b *Builder) From(id string) *StateBuilder {
	s := domain.State(id)
	if sb, ok := b.states[s]; ok {
		return sb
	}
	b.ts.AddState(s)
	sb := &StateBuilder{state: s, builder: b}
	b.states[s] = sb
	return sb
}

// States declares states with no outgoing transitions.
func (b *Builder) States(ids ...string) *Builder {
	for _, id := range ids {
		b.From(id)
	}
	return b
}

// Build returns the transition system. Every target is a state by construction,
// so Build only fails when a Block assignment is negative.
func (b *Builder) Build() (*domain.TransitionSystem, error) {
	for s, id := range b.initial {
		if id < 0 {
			return nil, fmt.Errorf("state %q has negative block %d", s, id)
		}
	}
	return b.ts, nil
}

// Initial returns the partition declared through Block calls, or nil if there was none.
// States without a Block call share block 0.
func (b *Builder) Initial() domain.Partitioning {
	if b.initial == nil {
		return nil
	}
	p := domain.NewPartitioning(b.ts.States(), 0)
	for s, id := range b.initial {
		p[s] = id
	}
	return p
}

// Loader wraps the built system in a memory loader under name.
func (b *Builder) Loader(name string) (*memory.Loader, error) {
	ts, err := b.Build()
	if err != nil {
		return nil, err
	}
	loader := memory.NewLoader()
	if err := loader.Register(name, ts, b.Initial()); err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
