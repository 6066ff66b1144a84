package main

import (
	"fmt"

	"github.com/aretw0/bisim/internal/cli"
	"github.com/aretw0/bisim/internal/presentation/graph"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [name]",
	Short: "Export a graph as a Mermaid diagram",
	Long: `Prints the transition system as a Mermaid flowchart.
With --classes, states are grouped into their branching bisimulation classes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer app.Close()

		name, err := pickGraph(cmd, app, args)
		if err != nil {
			return err
		}
		ts, err := app.Engine.Graph(cmd.Context(), name)
		if err != nil {
			return err
		}

		var p domain.Partitioning
		if classes, _ := cmd.Flags().GetBool("classes"); classes {
			result, err := app.Engine.RefineGraph(cmd.Context(), name)
			if err != nil {
				return err
			}
			p = result.Partition
		}

		var overlay *graph.Overlay
		if highlight, _ := cmd.Flags().GetStringSlice("highlight"); len(highlight) > 0 {
			overlay = &graph.Overlay{}
			for _, s := range highlight {
				overlay.Highlight = append(overlay.Highlight, domain.State(s))
			}
		}

		fmt.Print(graph.GenerateMermaid(ts, p, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("classes", false, "Group states by equivalence class")
	graphCmd.Flags().StringSlice("highlight", nil, "States to highlight")
}
