package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/bisim"
	"github.com/aretw0/bisim/pkg/adapters/memory"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	loader, err := memory.NewFromSystems(map[string]*domain.TransitionSystem{dsl.DemoName: dsl.Demo()})
	require.NoError(t, err)

	eng, err := bisim.New("", bisim.WithLoader(loader))
	require.NoError(t, err)
	return NewServer(eng)
}

func TestHandleListGraphs(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleListGraphs(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, resp.Graphs)
}

func TestHandleRefineGraph(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleRefineGraph(ctx, mcp.CallToolRequest{}, refineGraphArgs{Name: "demo"})
	require.NoError(t, err)
	assert.Equal(t, "demo", resp.Graph)
	assert.Equal(t, 3, resp.Rounds)
	assert.Equal(t, [][]string{
		{"00", "10", "20"},
		{"01", "02", "11", "12", "21"},
		{"03", "13", "23", "30", "31"},
		{"22"},
	}, resp.Classes)

	_, err = s.handleRefineGraph(ctx, mcp.CallToolRequest{}, refineGraphArgs{Name: "missing"})
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)

	_, err = s.handleRefineGraph(ctx, mcp.CallToolRequest{}, refineGraphArgs{})
	assert.Error(t, err)
}

func TestHandleRefineDocument(t *testing.T) {
	s := newTestServer(t)
	doc := `
name: inline
transitions:
  - {from: A, to: "A'", action: tau}
  - {from: "A'", to: "A''", action: x}
  - {from: B, to: "B'", action: x}
states: ["A''", "B'"]
`

	resp, err := s.handleRefineDocument(context.Background(), mcp.CallToolRequest{}, refineDocumentArgs{Document: doc})
	require.NoError(t, err)
	assert.Equal(t, "inline", resp.Graph)
	assert.Equal(t, [][]string{{"A", "A'", "B"}, {"A''", "B'"}}, resp.Classes)

	_, err = s.handleRefineDocument(context.Background(), mcp.CallToolRequest{}, refineDocumentArgs{Document: "transitions: ["})
	assert.Error(t, err)
}

func TestHandleRefineDocument_StoresGraphName(t *testing.T) {
	store := memory.NewStore()
	eng, err := bisim.New("", bisim.WithLoader(memory.NewLoader()), bisim.WithStore(store))
	require.NoError(t, err)
	s := NewServer(eng)
	ctx := context.Background()

	resp, err := s.handleRefineDocument(ctx, mcp.CallToolRequest{}, refineDocumentArgs{
		Document: "name: inline\ntransitions:\n  - {from: a, to: b, action: x}\n",
	})
	require.NoError(t, err)

	stored, err := store.Load(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "inline", stored.Graph)
}

func TestHandleCheckEquivalence_DeclaredBlocks(t *testing.T) {
	loader := memory.NewLoader()
	ts := domain.NewTransitionSystem()
	ts.AddState("a")
	ts.AddState("b")
	require.NoError(t, loader.Register("blocks", ts, domain.Partitioning{"a": 0, "b": 1}))

	eng, err := bisim.New("", bisim.WithLoader(loader))
	require.NoError(t, err)

	resp, err := NewServer(eng).handleCheckEquivalence(context.Background(), mcp.CallToolRequest{}, equivalenceArgs{Graph: "blocks", A: "a", B: "b"})
	require.NoError(t, err)
	assert.False(t, resp.Equivalent)
}

func TestHandleCheckEquivalence(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleCheckEquivalence(ctx, mcp.CallToolRequest{}, equivalenceArgs{Graph: "demo", A: "00", B: "20"})
	require.NoError(t, err)
	assert.True(t, resp.Equivalent)
	assert.Equal(t, []string{"00", "10", "20"}, resp.ClassA)

	resp, err = s.handleCheckEquivalence(ctx, mcp.CallToolRequest{}, equivalenceArgs{Graph: "demo", A: "22", B: "12"})
	require.NoError(t, err)
	assert.False(t, resp.Equivalent)
	assert.Equal(t, []string{"22"}, resp.ClassA)

	_, err = s.handleCheckEquivalence(ctx, mcp.CallToolRequest{}, equivalenceArgs{Graph: "demo", A: "00", B: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}
