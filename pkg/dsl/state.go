package dsl

import "github.com/aretw0/bisim/pkg/domain"

// StateBuilder adds outgoing transitions to one state.
type StateBuilder struct {
	state   domain.State
	builder *Builder
}

// Tau adds a silent transition to the target state.
func (sb *StateBuilder) Tau(to string) *StateBuilder {
	return sb.On(domain.Silent(), to)
}

// Do adds a visible transition labelled action to the target state.
func (sb *StateBuilder) Do(action, to string) *StateBuilder {
	return sb.On(domain.Visible(action), to)
}

// On adds a transition with an explicit label.
func (sb *StateBuilder) On(label domain.Label, to string) *StateBuilder {
	sb.builder.From(to)
	sb.builder.ts.AddTransition(sb.state, label, domain.State(to))
	return sb
}

// Block places the state in the given block of the initial partition.
func (sb *StateBuilder) Block(id int) *StateBuilder {
	if sb.builder.initial == nil {
		sb.builder.initial = make(domain.Partitioning)
	}
	sb.builder.initial[sb.state] = domain.PartitionID(id)
	return sb
}

// From switches to another state, allowing a single chain per system.
func (sb *StateBuilder) From(id string) *StateBuilder {
	return sb.builder.From(id)
}
