package report_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/bisim/internal/presentation/report"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *domain.Result {
	x := domain.Observation{Label: domain.Visible("x"), Block: 0}
	return &domain.Result{
		ID:        "run-1",
		Graph:     "pair",
		Partition: domain.Partitioning{"A": 0, "A'": 1, "B": 1},
		Rounds:    1,
		Splits:    1,
		Trace: []domain.RoundTrace{
			{
				Round:      1,
				Blocks:     1,
				Conflicts:  []domain.Conflict{{Block: 0, Splitter: x, NewBlock: 1}},
				Signatures: map[domain.State][]domain.Observation{"A": {x}, "B": {}},
			},
			{Round: 2, Blocks: 2},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := report.Markdown(sampleResult())

	assert.Contains(t, md, "# Branching bisimulation: pair")
	assert.Contains(t, md, "| `run-1` | 3 | 2 | 1 | 1 |")
	assert.Contains(t, md, "1. `A`\n2. `A'`, `B`\n")
	assert.Contains(t, md, "- block 0 split on `(x, 0)` into block 1")
	assert.Contains(t, md, "- `A`: {(x, 0)}")
	assert.Contains(t, md, "- `B`: {}")
	assert.Contains(t, md, "### Round 2 (2 blocks)\n\nStable.")
}

func TestText(t *testing.T) {
	text := report.Text(sampleResult())

	assert.Contains(t, text, "graph:   pair\n")
	assert.Contains(t, text, "classes: 2\n")
	assert.Contains(t, text, "{A}\n{A', B}\n")
	assert.Contains(t, text, "round 1: 1 blocks, 1 conflicts\n  0 -> 1 on (x, 0)\n")

	plain := report.Text(&domain.Result{Partition: domain.Partitioning{}})
	assert.False(t, strings.Contains(plain, "graph:"))
	assert.Contains(t, plain, "classes: 0\n")
}

func TestJSON(t *testing.T) {
	out, err := report.JSON(sampleResult())
	require.NoError(t, err)

	var decoded domain.Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleResult().Partition, decoded.Partition)
	assert.Len(t, decoded.Trace, 2)
}
