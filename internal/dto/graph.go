package dto

// GraphDocument is the on-disk form of a transition system.
// It uses "mapstructure" tags so the same struct decodes from YAML, JSON and frontmatter.
type GraphDocument struct {
	Name        string               `json:"name" yaml:"name" mapstructure:"name"`
	States      []string             `json:"states,omitempty" yaml:"states,omitempty" mapstructure:"states"`
	Transitions []TransitionDocument `json:"transitions" yaml:"transitions" mapstructure:"transitions"`

	// Initial optionally assigns states to starting blocks. States left out share block 0.
	Initial map[string]int `json:"initial,omitempty" yaml:"initial,omitempty" mapstructure:"initial"`
}

// TransitionDocument is one labelled edge. An empty action or "tau" denotes a silent step.
type TransitionDocument struct {
	From   string `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	To     string `json:"to" yaml:"to" mapstructure:"to"`
	Action string `json:"action,omitempty" yaml:"action,omitempty" mapstructure:"action"`
}

// StateMetadata is the frontmatter of a single-state document.
// The state identifier defaults to the document ID without extension.
type StateMetadata struct {
	ID          string               `json:"id" mapstructure:"id"`
	Block       *int                 `json:"block,omitempty" mapstructure:"block"`
	Transitions []TransitionDocument `json:"transitions" mapstructure:"transitions"`
}
