package domain

import (
	"sort"
)

// TransitionSystem maps every state to its set of outgoing edges.
// Every transition target is also a key, possibly with no outgoing edges.
// A TransitionSystem is read-only once handed to the engine.
type TransitionSystem struct {
	edges map[State]map[Edge]struct{}
}

// NewTransitionSystem creates an empty transition system.
func NewTransitionSystem() *TransitionSystem {
	return &TransitionSystem{
		edges: make(map[State]map[Edge]struct{}),
	}
}

// FromEdges builds a transition system from a raw adjacency map without registering
// targets as states. The result may violate the total-target invariant; call Validate.
func FromEdges(adj map[State][]Edge) *TransitionSystem {
	ts := NewTransitionSystem()
	for s, out := range adj {
		ts.AddState(s)
		for _, e := range out {
			ts.edges[s][e] = struct{}{}
		}
	}
	return ts
}

// AddState registers s with no outgoing transitions if it is not present yet.
func (ts *TransitionSystem) AddState(s State) {
	if _, ok := ts.edges[s]; !ok {
		ts.edges[s] = make(map[Edge]struct{})
	}
}

// AddTransition adds from --label--> to. Both endpoints become states.
// Adding the same transition twice has no effect.
func (ts *TransitionSystem) AddTransition(from State, label Label, to State) {
	ts.AddState(from)
	ts.AddState(to)
	ts.edges[from][Edge{To: to, Label: label}] = struct{}{}
}

// HasState reports whether s is a key of the transition system.
func (ts *TransitionSystem) HasState(s State) bool {
	_, ok := ts.edges[s]
	return ok
}

// Len returns the number of states.
func (ts *TransitionSystem) Len() int {
	return len(ts.edges)
}

// NumTransitions returns the number of distinct transitions.
func (ts *TransitionSystem) NumTransitions() int {
	n := 0
	for _, out := range ts.edges {
		n += len(out)
	}
	return n
}

// States returns all states in ascending order.
func (ts *TransitionSystem) States() []State {
	states := make([]State, 0, len(ts.edges))
	for s := range ts.edges {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// Edges returns the outgoing edges of s sorted by target, then label.
// The second return value is false when s is not a state.
func (ts *TransitionSystem) Edges(s State) ([]Edge, bool) {
	out, ok := ts.edges[s]
	if !ok {
		return nil, false
	}
	edges := make([]Edge, 0, len(out))
	for e := range out {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return lessEdge(edges[i], edges[j]) })
	return edges, true
}

// ForEachEdge calls fn for every outgoing edge of s in unspecified order.
// It returns false when s is not a state.
func (ts *TransitionSystem) ForEachEdge(s State, fn func(Edge)) bool {
	out, ok := ts.edges[s]
	if !ok {
		return false
	}
	for e := range out {
		fn(e)
	}
	return true
}

// Transitions returns every transition ordered by source, target and label.
func (ts *TransitionSystem) Transitions() []Transition {
	var all []Transition
	for _, s := range ts.States() {
		edges, _ := ts.Edges(s)
		for _, e := range edges {
			all = append(all, Transition{From: s, To: e.To, Label: e.Label})
		}
	}
	return all
}

// Validate checks the total-target invariant and reports the first dangling
// transition in deterministic order.
func (ts *TransitionSystem) Validate() error {
	for _, s := range ts.States() {
		edges, _ := ts.Edges(s)
		for _, e := range edges {
			if !ts.HasState(e.To) {
				return &StateError{State: s, Target: e.To, Err: ErrMissingTarget}
			}
		}
	}
	return nil
}
