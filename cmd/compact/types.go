package main

import (
	"github.com/aretw0/compact/internal/cli"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the action types of the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Types(sharedOptions(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
