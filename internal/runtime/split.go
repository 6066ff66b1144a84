package runtime

import (
	"github.com/aretw0/bisim/pkg/domain"
)

// Split runs the split step of one round.
//
// It visits the states in order and compares each against the aggregate signature of its
// block. The first member found lacking an observation fixes that observation as the
// block's splitter for the rest of the round, so both halves stay consistent on it. Other
// disagreements inside a half are left to a later round.
//
// p, sigs and blocks are the pre-round snapshot and are not modified. counter is the
// highest block identifier allocated so far; the updated value is returned.
func Split(
	order []domain.State,
	p domain.Partitioning,
	sigs map[domain.State]domain.Signature,
	blocks map[domain.PartitionID]domain.Signature,
	counter domain.PartitionID,
) (domain.Partitioning, []domain.Conflict, domain.PartitionID) {
	next := p.Clone()
	active := make(map[domain.PartitionID]int)
	var conflicts []domain.Conflict

	for _, n := range order {
		block := p[n]
		sig := sigs[n]

		if i, ok := active[block]; ok {
			c := conflicts[i]
			if !sig.Has(c.Splitter) {
				next[n] = c.NewBlock
			}
			continue
		}

		contested := blocks[block].Difference(sig)
		if len(contested) == 0 {
			continue
		}

		counter++
		active[block] = len(conflicts)
		conflicts = append(conflicts, domain.Conflict{
			Block:    block,
			Splitter: contested[0],
			NewBlock: counter,
		})
		next[n] = counter
	}

	return next, conflicts, counter
}
