package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/bisim/internal/cli"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/spf13/cobra"
)

var equivCmd = &cobra.Command{
	Use:   "equiv <graph> <state> <state>",
	Short: "Check whether two states are branching bisimilar",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.Setup(globalOptions(cmd))
		if err != nil {
			return err
		}
		defer app.Close()

		a, b := domain.State(args[1]), domain.State(args[2])
		ok, result, err := app.Engine.EquivalentGraph(cmd.Context(), args[0], a, b)
		if err != nil {
			return err
		}

		if ok {
			fmt.Printf("%s ~ %s (class %d)\n", a, b, result.Partition[a])
			return nil
		}
		fmt.Printf("%s and %s are not equivalent (classes %d and %d)\n", a, b, result.Partition[a], result.Partition[b])
		return errNotEquivalent
	},
}

var errNotEquivalent = errors.New("states are not equivalent")

func init() {
	rootCmd.AddCommand(equivCmd)
}
