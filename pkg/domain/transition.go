package domain

// Edge is an outgoing (target, label) pair of a state.
type Edge struct {
	To    State `json:"to"`
	Label Label `json:"label"`
}

// Transition is a (source, target, label) triple.
type Transition struct {
	From  State `json:"from"`
	To    State `json:"to"`
	Label Label `json:"label"`
}

func lessEdge(a, b Edge) bool {
	if a.To != b.To {
		return a.To < b.To
	}
	return a.Label.Less(b.Label)
}
