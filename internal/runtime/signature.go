package runtime

import (
	"github.com/aretw0/bisim/pkg/domain"
)

// picker chooses which pending state the closure search examines next.
// The signature does not depend on the choice; tests use it to prove that.
type picker func(pending int) int

// lifo pops the most recently discovered state.
func lifo(pending int) int {
	return pending - 1
}

// Signature computes the splitter set of s under partitioning p.
//
// Starting at s it follows silent transitions that stay inside the current block and
// records, for every visited state, each visible transition and each silent transition
// that leaves the block as a (label, destination block) observation.
func Signature(s domain.State, ts *domain.TransitionSystem, p domain.Partitioning) (domain.Signature, error) {
	return signature(s, ts, p, lifo)
}

func signature(s domain.State, ts *domain.TransitionSystem, p domain.Partitioning, pick picker) (domain.Signature, error) {
	if _, ok := p[s]; !ok {
		return nil, &domain.StateError{State: s, Err: domain.ErrUnknownState}
	}

	sig := make(domain.Signature)
	visited := map[domain.State]struct{}{s: {}}
	pending := []domain.State{s}

	for len(pending) > 0 {
		i := pick(len(pending))
		u := pending[i]
		pending[i] = pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		block := p[u]
		var (
			missing    domain.State
			hasMissing bool
		)
		found := ts.ForEachEdge(u, func(e domain.Edge) {
			target, ok := p[e.To]
			if !ok {
				if !hasMissing || e.To < missing {
					missing, hasMissing = e.To, true
				}
				return
			}
			if e.Label.IsSilent() && target == block {
				if _, seen := visited[e.To]; !seen {
					visited[e.To] = struct{}{}
					pending = append(pending, e.To)
				}
				return
			}
			sig.Add(domain.Observation{Label: e.Label, Block: target})
		})
		if !found {
			return nil, &domain.StateError{State: u, Err: domain.ErrUnknownState}
		}
		if hasMissing {
			return nil, &domain.StateError{State: u, Target: missing, Err: domain.ErrUnknownState}
		}
	}

	return sig, nil
}
