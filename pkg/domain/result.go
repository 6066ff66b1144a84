package domain

import "time"

// Result is the persisted record of one refinement run.
type Result struct {
	ID        string       `json:"id"`
	Graph     string       `json:"graph,omitempty"`
	Partition Partitioning `json:"partition"`
	Rounds    int          `json:"rounds"`
	Splits    int          `json:"splits"`
	CreatedAt time.Time    `json:"created_at"`
	Trace     []RoundTrace `json:"trace,omitempty"`
}

// Classes returns the equivalence classes of the result.
func (r *Result) Classes() [][]State {
	return r.Partition.Classes()
}
