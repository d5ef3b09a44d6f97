package main

import (
	"github.com/aretw0/compact/internal/cli"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Summarize the slices and action types of the manifest",
	Long: `Prints a Markdown table of every slice of the manifest with its kind,
default, reducers and action creators, followed by its action types.
The document is rendered when the output is a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		return cli.Describe(cli.DescribeOptions{Options: sharedOptions(cmd), Raw: raw}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	describeCmd.Flags().Bool("raw", false, "Print the Markdown source without rendering")
	rootCmd.AddCommand(describeCmd)
}
