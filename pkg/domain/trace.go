package domain

// Conflict records that Block was split on Splitter: members lacking the splitter
// moved to NewBlock.
type Conflict struct {
	Block    PartitionID `json:"block"`
	Splitter Observation `json:"splitter"`
	NewBlock PartitionID `json:"new_block"`
}

// RoundTrace describes one evaluated refinement round.
type RoundTrace struct {
	Round      int                     `json:"round"`
	Blocks     int                     `json:"blocks"`
	Conflicts  []Conflict              `json:"conflicts,omitempty"`
	Signatures map[State][]Observation `json:"signatures,omitempty"`
}
