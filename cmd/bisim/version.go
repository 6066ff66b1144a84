package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/bisim"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bisim",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bisim version %s\n", strings.TrimSpace(bisim.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
