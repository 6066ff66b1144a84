package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/bisim"
	"github.com/aretw0/bisim/internal/compiler"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const graphsURI = "bisim://graphs"

// RefineResponse summarizes a refinement for agents.
type RefineResponse struct {
	ID      string     `json:"id,omitempty" jsonschema_description:"Identifier of the stored result, if any"`
	Graph   string     `json:"graph,omitempty" jsonschema_description:"Name of the refined graph"`
	Rounds  int        `json:"rounds" jsonschema_description:"Number of rounds that split at least one block"`
	Splits  int        `json:"splits" jsonschema_description:"Number of blocks created"`
	Classes [][]string `json:"classes" jsonschema_description:"Equivalence classes, each sorted, ordered by first member"`
}

// EquivalenceResponse answers whether two states are branching bisimilar.
type EquivalenceResponse struct {
	Equivalent bool     `json:"equivalent" jsonschema_description:"True if both states end up in the same class"`
	ClassA     []string `json:"class_a" jsonschema_description:"Class of the first state"`
	ClassB     []string `json:"class_b" jsonschema_description:"Class of the second state"`
}

// ListGraphsResponse lists the graphs the server can refine.
type ListGraphsResponse struct {
	Graphs []string `json:"graphs" jsonschema_description:"Available graph names"`
}

type refineGraphArgs struct {
	Name string `json:"name"`
}

type refineDocumentArgs struct {
	Document string `json:"document"`
}

type equivalenceArgs struct {
	Graph string `json:"graph"`
	A     string `json:"a"`
	B     string `json:"b"`
}

// Engine is the surface the MCP server needs: refinement plus equivalence queries
// over named graphs.
type Engine interface {
	ports.Refiner
	EquivalentGraph(ctx context.Context, name string, a, b domain.State) (bool, *domain.Result, error)
}

// Server wraps the bisim Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("bisim-mcp", strings.TrimSpace(bisim.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_graphs
	listTool := mcp.NewTool("list_graphs",
		mcp.WithDescription("List the names of the transition systems available for refinement."),
		mcp.WithOutputSchema[ListGraphsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListGraphs))

	// TOOL: refine_graph
	refineTool := mcp.NewTool("refine_graph",
		mcp.WithDescription("Compute the branching-bisimulation equivalence classes of a named graph."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Graph name, as returned by list_graphs")),
		mcp.WithOutputSchema[RefineResponse](),
	)
	s.mcpServer.AddTool(refineTool, mcp.NewStructuredToolHandler(s.handleRefineGraph))

	// TOOL: refine_document
	documentTool := mcp.NewTool("refine_document",
		mcp.WithDescription("Compute the equivalence classes of an inline graph document (YAML or JSON with name, states, transitions: [{from, to, action}]). Use action 'tau' for silent steps."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The graph document")),
		mcp.WithOutputSchema[RefineResponse](),
	)
	s.mcpServer.AddTool(documentTool, mcp.NewStructuredToolHandler(s.handleRefineDocument))

	// TOOL: check_equivalence
	equivTool := mcp.NewTool("check_equivalence",
		mcp.WithDescription("Check whether two states of a named graph are branching bisimilar."),
		mcp.WithString("graph", mcp.Required(), mcp.Description("Graph name")),
		mcp.WithString("a", mcp.Required(), mcp.Description("First state")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Second state")),
		mcp.WithOutputSchema[EquivalenceResponse](),
	)
	s.mcpServer.AddTool(equivTool, mcp.NewStructuredToolHandler(s.handleCheckEquivalence))
}

func (s *Server) handleListGraphs(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListGraphsResponse, error) {
	names, err := s.engine.Graphs(ctx)
	if err != nil {
		return ListGraphsResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return ListGraphsResponse{Graphs: names}, nil
}

func (s *Server) handleRefineGraph(ctx context.Context, request mcp.CallToolRequest, args refineGraphArgs) (RefineResponse, error) {
	if args.Name == "" {
		return RefineResponse{}, errors.New("name is required")
	}
	result, err := s.engine.RefineGraph(ctx, args.Name)
	if err != nil {
		return RefineResponse{}, fmt.Errorf("refine failed: %w", err)
	}
	return newRefineResponse(result), nil
}

func (s *Server) handleRefineDocument(ctx context.Context, request mcp.CallToolRequest, args refineDocumentArgs) (RefineResponse, error) {
	doc, err := compiler.NewParser().Parse([]byte(args.Document))
	if err != nil {
		slog.Warn("MCP refine_document: document rejected", "err", err, "size", len(args.Document))
		return RefineResponse{}, err
	}
	ts, initial, err := compiler.Compile(doc)
	if err != nil {
		return RefineResponse{}, err
	}

	result, err := s.engine.RefineNamed(ctx, doc.Name, ts, initial)
	if err != nil {
		return RefineResponse{}, fmt.Errorf("refine failed: %w", err)
	}
	return newRefineResponse(result), nil
}

func (s *Server) handleCheckEquivalence(ctx context.Context, request mcp.CallToolRequest, args equivalenceArgs) (EquivalenceResponse, error) {
	a, b := domain.State(args.A), domain.State(args.B)
	same, result, err := s.engine.EquivalentGraph(ctx, args.Graph, a, b)
	if err != nil {
		return EquivalenceResponse{}, err
	}

	return EquivalenceResponse{
		Equivalent: same,
		ClassA:     classOf(result, a),
		ClassB:     classOf(result, b),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: bisim://graphs
	s.mcpServer.AddResource(mcp.NewResource(graphsURI, "Available Graphs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Graphs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list graphs: %w", err)
		}
		jsonBytes, _ := json.Marshal(ListGraphsResponse{Graphs: names})

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func newRefineResponse(result *domain.Result) RefineResponse {
	classes := result.Classes()
	out := RefineResponse{
		ID:      result.ID,
		Graph:   result.Graph,
		Rounds:  result.Rounds,
		Splits:  result.Splits,
		Classes: make([][]string, len(classes)),
	}
	for i, class := range classes {
		out.Classes[i] = statesToStrings(class)
	}
	return out
}

func classOf(result *domain.Result, s domain.State) []string {
	id := result.Partition[s]
	return statesToStrings(result.Partition.Blocks()[id])
}

func statesToStrings(states []domain.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}
