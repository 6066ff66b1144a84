package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/bisim/internal/cli"
	"github.com/aretw0/bisim/internal/presentation/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var refineCmd = &cobra.Command{
	Use:   "refine [graph]",
	Short: "Partition a graph into branching bisimulation classes",
	Long: `Loads the named graph (or the only graph in the directory), refines its initial
partition to the coarsest stable one and prints the equivalence classes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		opts.Trace, _ = cmd.Flags().GetBool("trace")

		app, err := cli.Setup(opts)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		name, err := pickGraph(cmd, app, args)
		if err != nil {
			return err
		}

		result, err := app.Engine.RefineGraph(ctx, name)
		if err != nil {
			return err
		}
		ts, err := app.Engine.Graph(ctx, name)
		if err != nil {
			return err
		}

		return cli.Render(os.Stdout, ts, result, renderOptions(cmd, app))
	},
}

func init() {
	rootCmd.AddCommand(refineCmd)
	refineCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown or mermaid (default from bisim.yaml)")
	refineCmd.Flags().Bool("trace", false, "Include per-round signatures in the report")
}

// pickGraph returns args[0], or the only available graph.
func pickGraph(cmd *cobra.Command, app *cli.App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	graphs, err := app.Engine.Graphs(cmd.Context())
	if err != nil {
		return "", err
	}
	switch len(graphs) {
	case 0:
		return "", fmt.Errorf("no graphs found")
	case 1:
		return graphs[0], nil
	}
	return "", fmt.Errorf("several graphs found, pick one: %s", strings.Join(graphs, ", "))
}

// renderOptions resolves the output format and whether stdout can take colors.
func renderOptions(cmd *cobra.Command, app *cli.App) cli.RenderOptions {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = app.Config.Output.Format
	}
	return cli.RenderOptions{
		Format:  format,
		Rich:    tui.IsTerminal(os.Stdout),
		Profile: termenvProfile(),
	}
}

func termenvProfile() termenv.Profile {
	return termenv.NewOutput(os.Stdout).Profile
}
