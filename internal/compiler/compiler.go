package compiler

import (
	"fmt"
	"sort"

	"github.com/aretw0/bisim/internal/dto"
	"github.com/aretw0/bisim/pkg/domain"
)

// Compile turns a graph document into a transition system and its initial partition.
// The partition is nil when the document declares none.
// Both endpoints of a transition become states, so a document may omit states
// that appear in transitions.
func Compile(doc *dto.GraphDocument) (*domain.TransitionSystem, domain.Partitioning, error) {
	adj := make(map[domain.State][]domain.Edge)
	for _, s := range doc.States {
		if s == "" {
			return nil, nil, fmt.Errorf("graph %s: empty state name", doc.Name)
		}
		adj[domain.State(s)] = adj[domain.State(s)]
	}
	for i, t := range doc.Transitions {
		if t.From == "" || t.To == "" {
			return nil, nil, fmt.Errorf("graph %s: transition %d: from and to are required", doc.Name, i)
		}
		from, to := domain.State(t.From), domain.State(t.To)
		adj[from] = append(adj[from], domain.Edge{To: to, Label: domain.ParseLabel(t.Action)})
		adj[to] = adj[to]
	}

	ts := domain.FromEdges(adj)

	initial, err := compileInitial(ts, doc.Initial)
	if err != nil {
		return nil, nil, fmt.Errorf("graph %s: %w", doc.Name, err)
	}
	return ts, initial, nil
}

// CompileStates builds a transition system from one document per state.
// A transition to a state without a document fails with domain.ErrMissingTarget.
func CompileStates(name string, states map[string]dto.StateMetadata) (*domain.TransitionSystem, domain.Partitioning, error) {
	doc := &dto.GraphDocument{Name: name}

	ids := make([]string, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		meta := states[id]
		doc.States = append(doc.States, id)
		for _, t := range meta.Transitions {
			if _, ok := states[t.To]; !ok {
				return nil, nil, fmt.Errorf("graph %s: %w", name, &domain.StateError{State: domain.State(id), Target: domain.State(t.To), Err: domain.ErrMissingTarget})
			}
			doc.Transitions = append(doc.Transitions, dto.TransitionDocument{From: id, To: t.To, Action: t.Action})
		}
		if meta.Block != nil {
			if doc.Initial == nil {
				doc.Initial = make(map[string]int)
			}
			doc.Initial[id] = *meta.Block
		}
	}
	return Compile(doc)
}

// Decompile renders a transition system back into its document form.
func Decompile(name string, ts *domain.TransitionSystem, initial domain.Partitioning) *dto.GraphDocument {
	doc := &dto.GraphDocument{Name: name}
	for _, s := range ts.States() {
		doc.States = append(doc.States, string(s))
	}
	for _, t := range ts.Transitions() {
		action := t.Label.Action
		if t.Label.IsSilent() {
			action = domain.SilentAction
		}
		doc.Transitions = append(doc.Transitions, dto.TransitionDocument{From: string(t.From), To: string(t.To), Action: action})
	}
	if initial != nil {
		doc.Initial = make(map[string]int, len(initial))
		for s, id := range initial {
			doc.Initial[string(s)] = int(id)
		}
	}
	return doc
}

func compileInitial(ts *domain.TransitionSystem, raw map[string]int) (domain.Partitioning, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	p := domain.NewPartitioning(ts.States(), 0)
	for s, id := range raw {
		if !ts.HasState(domain.State(s)) {
			return nil, fmt.Errorf("initial partition: %w", &domain.StateError{State: domain.State(s), Err: domain.ErrUnknownState})
		}
		if id < 0 {
			return nil, fmt.Errorf("initial partition: state %q has negative block %d", s, id)
		}
		p[domain.State(s)] = domain.PartitionID(id)
	}
	return p, nil
}
