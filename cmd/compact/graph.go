package main

import (
	"github.com/aretw0/compact/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the definition tree visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the slices of the manifest.
With --script, the slices changed by the script are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		script, _ := cmd.Flags().GetString("script")
		return cli.Graph(sharedOptions(cmd), script, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("script", "", "Action script whose changes are highlighted")
}
