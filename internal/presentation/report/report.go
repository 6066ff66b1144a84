package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/bisim/pkg/domain"
)

// Markdown renders a result as a Markdown document suitable for glamour.
func Markdown(result *domain.Result) string {
	var sb strings.Builder

	title := result.Graph
	if title == "" {
		title = "transition system"
	}
	sb.WriteString(fmt.Sprintf("# Branching bisimulation: %s\n\n", title))

	sb.WriteString("| Run | States | Classes | Rounds | Splits |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	classes := result.Classes()
	sb.WriteString(fmt.Sprintf("| `%s` | %d | %d | %d | %d |\n\n",
		result.ID, len(result.Partition), len(classes), result.Rounds, result.Splits))

	sb.WriteString("## Equivalence classes\n\n")
	for i, class := range classes {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, joinStates(class, "`", ", ")))
	}

	if len(result.Trace) > 0 {
		sb.WriteString("\n## Rounds\n\n")
		for _, rt := range result.Trace {
			sb.WriteString(fmt.Sprintf("### Round %d (%d blocks)\n\n", rt.Round, rt.Blocks))
			if len(rt.Conflicts) == 0 {
				sb.WriteString("Stable.\n\n")
			}
			for _, c := range rt.Conflicts {
				sb.WriteString(fmt.Sprintf("- block %d split on `%s` into block %d\n", c.Block, c.Splitter, c.NewBlock))
			}
			if len(rt.Conflicts) > 0 {
				sb.WriteString("\n")
			}
			writeSignatures(&sb, rt.Signatures, "- `%s`: %s\n")
		}
	}

	return sb.String()
}

// Text renders a result as plain text, one class per line.
func Text(result *domain.Result) string {
	var sb strings.Builder

	if result.Graph != "" {
		sb.WriteString(fmt.Sprintf("graph:   %s\n", result.Graph))
	}
	if result.ID != "" {
		sb.WriteString(fmt.Sprintf("run:     %s\n", result.ID))
	}
	classes := result.Classes()
	sb.WriteString(fmt.Sprintf("states:  %d\n", len(result.Partition)))
	sb.WriteString(fmt.Sprintf("classes: %d\n", len(classes)))
	sb.WriteString(fmt.Sprintf("rounds:  %d\n", result.Rounds))
	sb.WriteString(fmt.Sprintf("splits:  %d\n\n", result.Splits))

	for _, class := range classes {
		sb.WriteString(fmt.Sprintf("{%s}\n", joinStates(class, "", ", ")))
	}

	for _, rt := range result.Trace {
		sb.WriteString(fmt.Sprintf("\nround %d: %d blocks, %d conflicts\n", rt.Round, rt.Blocks, len(rt.Conflicts)))
		for _, c := range rt.Conflicts {
			sb.WriteString(fmt.Sprintf("  %d -> %d on %s\n", c.Block, c.NewBlock, c.Splitter))
		}
		writeSignatures(&sb, rt.Signatures, "  %s | %s\n")
	}

	return sb.String()
}

// JSON renders a result as indented JSON.
func JSON(result *domain.Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data) + "\n", nil
}

func writeSignatures(sb *strings.Builder, sigs map[domain.State][]domain.Observation, format string) {
	if len(sigs) == 0 {
		return
	}
	states := make([]domain.State, 0, len(sigs))
	for s := range sigs {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	for _, s := range states {
		obs := make([]string, 0, len(sigs[s]))
		for _, o := range sigs[s] {
			obs = append(obs, o.String())
		}
		sb.WriteString(fmt.Sprintf(format, s, "{"+strings.Join(obs, ", ")+"}"))
	}
	sb.WriteString("\n")
}

func joinStates(states []domain.State, quote, sep string) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = quote + string(s) + quote
	}
	return strings.Join(parts, sep)
}
