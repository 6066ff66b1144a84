package main

import (
	"os"

	"github.com/aretw0/bisim"
	"github.com/aretw0/bisim/internal/cli"
	"github.com/aretw0/bisim/internal/config"
	"github.com/aretw0/bisim/internal/presentation/tui"
	"github.com/aretw0/bisim/pkg/adapters/memory"
	"github.com/aretw0/bisim/pkg/dsl"
	"github.com/aretw0/bisim/pkg/observability"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Refine the built-in 4x4 grid example",
	Long:  `Refines the demonstration system shipped with bisim. No graph files are needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		logger, err := cli.NewLogger(opts.Debug, opts.LogLevel, "")
		if err != nil {
			return err
		}
		trace, _ := cmd.Flags().GetBool("trace")

		loader := memory.NewLoader()
		if err := loader.Register(dsl.DemoName, dsl.Demo(), nil); err != nil {
			return err
		}

		engineOpts := []bisim.Option{
			bisim.WithLoader(loader),
			bisim.WithLogger(logger),
			bisim.WithTrace(trace),
		}
		if opts.Debug {
			engineOpts = append(engineOpts, bisim.WithLifecycleHooks(observability.LoggingHooks(logger)))
		}
		engine, err := bisim.New(dsl.DemoName, engineOpts...)
		if err != nil {
			return err
		}

		result, err := engine.RefineGraph(cmd.Context(), dsl.DemoName)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		rich := tui.IsTerminal(os.Stdout)
		if rich && format == config.FormatText {
			tui.PrintBanner(os.Stdout)
		}
		return cli.Render(os.Stdout, dsl.Demo(), result, cli.RenderOptions{
			Format:  format,
			Rich:    rich,
			Profile: termenvProfile(),
		})
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringP("format", "f", config.FormatText, "Output format: text, json, markdown or mermaid")
	demoCmd.Flags().Bool("trace", false, "Include per-round signatures in the report")
}
