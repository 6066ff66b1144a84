package validator

import (
	"sort"

	"github.com/aretw0/bisim/pkg/domain"
)

// ValidateSystem checks the total-target invariant and reports every dangling transition,
// in deterministic order. Loaders call it to fail fast before the engine runs.
func ValidateSystem(ts *domain.TransitionSystem) error {
	var errs []error
	for _, tr := range ts.Transitions() {
		if !ts.HasState(tr.To) {
			errs = append(errs, &domain.StateError{State: tr.From, Target: tr.To, Err: domain.ErrMissingTarget})
		}
	}
	return aggregate(errs)
}

// ValidatePartition checks that p assigns a block to every state of ts and to nothing else.
func ValidatePartition(ts *domain.TransitionSystem, p domain.Partitioning) error {
	var errs []error
	for _, s := range ts.States() {
		if _, ok := p[s]; !ok {
			errs = append(errs, &domain.StateError{State: s, Err: domain.ErrUnknownState})
		}
	}

	extra := make([]domain.State, 0)
	for s := range p {
		if !ts.HasState(s) {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, s := range extra {
		errs = append(errs, &domain.StateError{State: s, Err: domain.ErrUnknownState})
	}

	return aggregate(errs)
}

// Unreachable lists the states that cannot be reached from root, in ascending order.
// Unreachable states are legal; the CLI reports them as warnings.
func Unreachable(ts *domain.TransitionSystem, root domain.State) []domain.State {
	if !ts.HasState(root) {
		return ts.States()
	}

	visited := map[domain.State]bool{root: true}
	queue := []domain.State{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		edges, _ := ts.Edges(current)
		for _, e := range edges {
			if !visited[e.To] {
				visited[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}

	var missing []domain.State
	for _, s := range ts.States() {
		if !visited[s] {
			missing = append(missing, s)
		}
	}
	return missing
}
