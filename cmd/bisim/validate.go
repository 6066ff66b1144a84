package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/bisim/internal/cli"
	"github.com/aretw0/bisim/internal/validator"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [graph...]",
	Short: "Check graphs for consistency",
	Long: `Loads every graph (or the named ones) and reports dangling transitions.
With --root, states unreachable from the root are reported as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer app.Close()

		names := args
		if len(names) == 0 {
			if names, err = app.Engine.Graphs(cmd.Context()); err != nil {
				return err
			}
		}
		root, _ := cmd.Flags().GetString("root")

		var failed []error
		for _, name := range names {
			if err := validateGraph(cmd, app, name, domain.State(root)); err != nil {
				fmt.Printf("✗ %s: %v\n", name, err)
				failed = append(failed, fmt.Errorf("%s: %w", name, err))
				continue
			}
			fmt.Printf("✓ %s\n", name)
		}

		if len(failed) > 0 {
			return fmt.Errorf("validation failed: %w", errors.Join(failed...))
		}
		fmt.Println("All graphs are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("root", "", "Initial state used for the reachability check")
}

func validateGraph(cmd *cobra.Command, app *cli.App, name string, root domain.State) error {
	ts, err := app.Engine.Graph(cmd.Context(), name)
	if err != nil {
		return err
	}
	if err := validator.ValidateSystem(ts); err != nil {
		return err
	}
	if root == "" {
		return nil
	}
	if !ts.HasState(root) {
		return &domain.StateError{State: root, Err: domain.ErrUnknownState}
	}
	for _, s := range validator.Unreachable(ts, root) {
		fmt.Printf("  warning: %s is unreachable from %s\n", s, root)
	}
	return nil
}
