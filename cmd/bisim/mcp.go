package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/bisim/internal/cli"
	"github.com/aretw0/bisim/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts bisim as an MCP Server so AI agents can refine graphs and check equivalences as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			opts.Dir = args[0]
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app, err := cli.Setup(opts)
		if err != nil {
			return err
		}
		defer app.Close()

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		slog.SetDefault(app.Logger)
		srv := mcp.NewServer(app.Engine)

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			slog.Info("starting bisim MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			slog.Info("starting bisim MCP server (SSE)", "port", port)

			sc := cli.NewSignalContext(cmd.Context())
			defer sc.Cancel()

			if err := srv.ServeSSE(sc, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			slog.Info("MCP server stopped gracefully")
			return nil
		}
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
