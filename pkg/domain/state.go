package domain

// State is an opaque state identifier.
// States are ordered lexicographically whenever a deterministic order is required.
type State string

// LabelKind tags a Label as silent or visible.
type LabelKind uint8

const (
	// KindSilent marks an internal (τ) step, unobservable from outside.
	KindSilent LabelKind = iota
	// KindVisible marks an observable action carrying a payload.
	KindVisible
)

// SilentAction is the textual spelling of a silent label in graph documents.
const SilentAction = "tau"

// Label is either Silent or Visible(action). Labels compare by full value.
type Label struct {
	Kind   LabelKind `json:"kind"`
	Action string    `json:"action,omitempty"`
}

// Silent returns the silent label.
func Silent() Label {
	return Label{Kind: KindSilent}
}

// Visible returns a visible label carrying the given action.
func Visible(action string) Label {
	return Label{Kind: KindVisible, Action: action}
}

// ParseLabel maps the document spelling of an action to a Label.
// The empty string, "tau" and "τ" denote the silent label.
func ParseLabel(action string) Label {
	switch action {
	case "", SilentAction, "τ":
		return Silent()
	}
	return Visible(action)
}

// IsSilent reports whether l is the silent label.
func (l Label) IsSilent() bool {
	return l.Kind == KindSilent
}

func (l Label) String() string {
	if l.IsSilent() {
		return "τ"
	}
	return l.Action
}

// Less orders silent before visible, then visible labels by action.
func (l Label) Less(o Label) bool {
	if l.Kind != o.Kind {
		return l.Kind < o.Kind
	}
	return l.Action < o.Action
}
