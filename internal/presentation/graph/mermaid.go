package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/bisim/pkg/domain"
)

// Overlay marks states to highlight on the graph.
type Overlay struct {
	Highlight []domain.State
}

// GenerateMermaid produces a Mermaid flowchart from a transition system.
// When p is non-nil every block becomes a subgraph. Silent transitions are
// dotted and labelled τ; visible transitions are solid and labelled by action.
func GenerateMermaid(ts *domain.TransitionSystem, p domain.Partitioning, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	states := ts.States()
	ids := make(map[domain.State]string, len(states))
	for i, s := range states {
		ids[s] = fmt.Sprintf("s%d", i)
	}

	if p == nil {
		for _, s := range states {
			writeNode(&sb, "    ", ids[s], s)
		}
	} else {
		blocks := p.Blocks()
		order := make([]domain.PartitionID, 0, len(blocks))
		for id := range blocks {
			order = append(order, id)
		}
		sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

		for _, id := range order {
			sb.WriteString(fmt.Sprintf("    subgraph b%d[\"block %d\"]\n", id, id))
			for _, s := range blocks[id] {
				writeNode(&sb, "        ", ids[s], s)
			}
			sb.WriteString("    end\n")
		}
	}

	for _, t := range ts.Transitions() {
		arrow := fmt.Sprintf("-- \"%s\" -->", escapeLabel(t.Label.Action))
		if t.Label.IsSilent() {
			arrow = "-. \"τ\" .->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", ids[t.From], arrow, ids[t.To]))
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light and dark themes
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[string]bool)
		for _, s := range overlay.Highlight {
			id, ok := ids[s]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s highlight;\n", id))
		}
	}

	return sb.String()
}

func writeNode(sb *strings.Builder, indent, id string, s domain.State) {
	sb.WriteString(fmt.Sprintf("%s%s[\"%s\"]\n", indent, id, escapeLabel(string(s))))
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
