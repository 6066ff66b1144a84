package main

import (
	"fmt"
	"os"

	"github.com/aretw0/bisim/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bisim",
	Short: "Bisim computes branching bisimulation classes of labelled transition systems",
	Long: `Bisim reads labelled transition systems from YAML/JSON documents (or a folder of
Markdown notes) and partitions their states into branching bisimulation classes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the graph documents")
	rootCmd.PersistentFlags().String("config", "", "Path to bisim.yaml (default: <dir>/bisim.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every refinement round to stderr")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// globalOptions reads the persistent flags into cli.Options.
func globalOptions(cmd *cobra.Command) cli.Options {
	dir, _ := cmd.Flags().GetString("dir")
	cfg, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	level, _ := cmd.Flags().GetString("log-level")
	return cli.Options{
		Dir:        dir,
		ConfigPath: cfg,
		Debug:      debug,
		LogLevel:   level,
	}
}
