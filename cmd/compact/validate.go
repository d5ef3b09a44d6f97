package main

import (
	"github.com/aretw0/compact/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the manifest for consistency",
	Long:  `Reports name collisions, lists without keys and duplicate keys in list defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(sharedOptions(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
