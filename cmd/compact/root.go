package main

import (
	"fmt"
	"os"

	"github.com/aretw0/compact/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compact",
	Short: "compact compiles declarative reducer definitions",
	Long: `compact loads a YAML manifest describing a tree of state slices and
replays action scripts against it, lists its action types, draws it, or
serves its sessions over HTTP.`,
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
	rootCmd.PersistentFlags().StringP("file", "f", ".", "Manifest file, or a directory containing compact.yaml")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every dispatch")
}

// sharedOptions reads the persistent flags.
func sharedOptions(cmd *cobra.Command) cli.Options {
	file, _ := cmd.Flags().GetString("file")
	level, _ := cmd.Flags().GetString("log-level")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{File: file, LogLevel: level, Debug: debug}
}
