package domain

import (
	"fmt"
	"sort"
)

// Observation is one splitter pair: a label and the block it leads into.
type Observation struct {
	Label Label       `json:"label"`
	Block PartitionID `json:"block"`
}

// Less orders observations by label, then by block.
func (o Observation) Less(x Observation) bool {
	if o.Label != x.Label {
		return o.Label.Less(x.Label)
	}
	return o.Block < x.Block
}

func (o Observation) String() string {
	return fmt.Sprintf("(%s, %d)", o.Label, o.Block)
}

// Signature is the set of observations of a state under one partitioning.
type Signature map[Observation]struct{}

// NewSignature builds a signature from the given observations.
func NewSignature(obs ...Observation) Signature {
	sig := make(Signature, len(obs))
	for _, o := range obs {
		sig[o] = struct{}{}
	}
	return sig
}

// Add inserts o. Inserting an existing observation has no effect.
func (s Signature) Add(o Observation) {
	s[o] = struct{}{}
}

// Has reports membership.
func (s Signature) Has(o Observation) bool {
	_, ok := s[o]
	return ok
}

// Len returns the number of observations.
func (s Signature) Len() int {
	return len(s)
}

// Union adds every observation of o to s.
func (s Signature) Union(o Signature) {
	for x := range o {
		s[x] = struct{}{}
	}
}

// Difference returns the observations of s missing from o, sorted.
func (s Signature) Difference(o Signature) []Observation {
	var diff []Observation
	for x := range s {
		if !o.Has(x) {
			diff = append(diff, x)
		}
	}
	sortObservations(diff)
	return diff
}

// Equal reports set equality.
func (s Signature) Equal(o Signature) bool {
	if len(s) != len(o) {
		return false
	}
	for x := range s {
		if !o.Has(x) {
			return false
		}
	}
	return true
}

// Sorted returns the observations in ascending order.
func (s Signature) Sorted() []Observation {
	obs := make([]Observation, 0, len(s))
	for x := range s {
		obs = append(obs, x)
	}
	sortObservations(obs)
	return obs
}

func sortObservations(obs []Observation) {
	sort.Slice(obs, func(i, j int) bool { return obs[i].Less(obs[j]) })
}
