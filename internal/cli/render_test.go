package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/bisim/internal/config"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFixture() (*domain.TransitionSystem, *domain.Result) {
	ts := domain.NewTransitionSystem()
	ts.AddTransition("A", domain.Visible("x"), "A'")
	ts.AddState("B")
	return ts, &domain.Result{
		ID:        "run-1",
		Graph:     "pair",
		Partition: domain.Partitioning{"A": 0, "A'": 1, "B": 1},
		Rounds:    1,
		Splits:    1,
	}
}

func TestRender(t *testing.T) {
	ts, result := renderFixture()

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, ts, result, RenderOptions{Format: config.FormatText}))
		assert.Contains(t, buf.String(), "pair")
		assert.Contains(t, buf.String(), "A'")
	})

	t.Run("Rich text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, ts, result, RenderOptions{Rich: true, Profile: termenv.Ascii}))
		assert.Contains(t, buf.String(), "● A\n")
		assert.Contains(t, buf.String(), "2 classes, 1 rounds, 1 splits")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, ts, result, RenderOptions{Format: config.FormatJSON}))

		var decoded domain.Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, result.Partition, decoded.Partition)
	})

	t.Run("Markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, ts, result, RenderOptions{Format: config.FormatMarkdown}))
		assert.Contains(t, buf.String(), "# Branching bisimulation: pair")
	})

	t.Run("Mermaid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, ts, result, RenderOptions{Format: config.FormatMermaid}))
		assert.Contains(t, buf.String(), "graph")
		assert.Contains(t, buf.String(), "subgraph")

		assert.Error(t, Render(&buf, nil, result, RenderOptions{Format: config.FormatMermaid}))
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Error(t, Render(&bytes.Buffer{}, ts, result, RenderOptions{Format: "svg"}))
	})
}
