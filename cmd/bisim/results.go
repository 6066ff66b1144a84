package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bisim/internal/cli"
	"github.com/aretw0/bisim/internal/config"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect stored refinement results",
	Long:  `Lists or shows results persisted by the configured store (file or redis backend).`,
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored result IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer app.Close()

		ids, err := app.Engine.Store().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No stored results.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := app.Engine.Result(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		opts := renderOptions(cmd, app)
		if opts.Format == config.FormatMermaid && result.Graph != "" {
			ts, err := app.Engine.Graph(cmd.Context(), result.Graph)
			if err != nil {
				return err
			}
			return cli.Render(os.Stdout, ts, result, opts)
		}
		return cli.Render(os.Stdout, nil, result, opts)
	},
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer app.Close()

		return app.Engine.Store().Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsListCmd, resultsShowCmd, resultsDeleteCmd)
	resultsShowCmd.Flags().StringP("format", "f", "", "Output format: text, json, markdown or mermaid (default from bisim.yaml)")
}
