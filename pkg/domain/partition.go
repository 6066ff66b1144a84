package domain

import (
	"sort"
)

// PartitionID identifies a block. It carries no meaning beyond identity.
type PartitionID int

// Partitioning maps every state of a transition system to its block.
type Partitioning map[State]PartitionID

// NewPartitioning places every given state in the same block.
func NewPartitioning(states []State, id PartitionID) Partitioning {
	p := make(Partitioning, len(states))
	for _, s := range states {
		p[s] = id
	}
	return p
}

// Clone returns an independent copy.
func (p Partitioning) Clone() Partitioning {
	c := make(Partitioning, len(p))
	for s, id := range p {
		c[s] = id
	}
	return c
}

// MaxID returns the largest block identifier in use, or 0 when p is empty.
func (p Partitioning) MaxID() PartitionID {
	var max PartitionID
	for _, id := range p {
		if id > max {
			max = id
		}
	}
	return max
}

// Blocks groups states by block. Members are sorted.
func (p Partitioning) Blocks() map[PartitionID][]State {
	blocks := make(map[PartitionID][]State)
	for s, id := range p {
		blocks[id] = append(blocks[id], s)
	}
	for _, members := range blocks {
		sortStates(members)
	}
	return blocks
}

// NumBlocks returns the number of live blocks.
func (p Partitioning) NumBlocks() int {
	seen := make(map[PartitionID]struct{})
	for _, id := range p {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// Classes returns the equivalence classes, each sorted, ordered by their smallest member.
func (p Partitioning) Classes() [][]State {
	blocks := p.Blocks()
	classes := make([][]State, 0, len(blocks))
	for _, members := range blocks {
		classes = append(classes, members)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i][0] < classes[j][0] })
	return classes
}

// Canonical relabels blocks 0..k-1 in the order of their smallest member.
// Two partitionings inducing the same relation have equal canonical forms.
func (p Partitioning) Canonical() Partitioning {
	c := make(Partitioning, len(p))
	for i, class := range p.Classes() {
		for _, s := range class {
			c[s] = PartitionID(i)
		}
	}
	return c
}

// SameRelation reports whether p and o induce the same equivalence relation,
// regardless of the block identifiers used.
func (p Partitioning) SameRelation(o Partitioning) bool {
	if len(p) != len(o) {
		return false
	}
	fwd := make(map[PartitionID]PartitionID)
	bwd := make(map[PartitionID]PartitionID)
	for s, a := range p {
		b, ok := o[s]
		if !ok {
			return false
		}
		if x, seen := fwd[a]; seen && x != b {
			return false
		}
		if x, seen := bwd[b]; seen && x != a {
			return false
		}
		fwd[a] = b
		bwd[b] = a
	}
	return true
}

// Refines reports whether every block of p lies inside a single block of coarser.
func (p Partitioning) Refines(coarser Partitioning) bool {
	owner := make(map[PartitionID]PartitionID)
	for s, id := range p {
		c, ok := coarser[s]
		if !ok {
			return false
		}
		if prev, seen := owner[id]; seen && prev != c {
			return false
		}
		owner[id] = c
	}
	return true
}

// Covers checks that every state of ts has a block, reporting the first missing state.
func (p Partitioning) Covers(ts *TransitionSystem) error {
	for _, s := range ts.States() {
		if _, ok := p[s]; !ok {
			return &StateError{State: s, Err: ErrUnknownState}
		}
	}
	return nil
}

func sortStates(states []State) {
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
}
