package main

import (
	"github.com/aretw0/compact/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Apply an action script and print the resulting state",
	Long: `Starts from the default state of the manifest, applies every step of the
YAML action script in order and prints the final state.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		return cli.Replay(cli.ReplayOptions{
			Options:  sharedOptions(cmd),
			Script:   args[0],
			Headless: headless,
			JSON:     jsonMode,
		}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("headless", false, "Print only the final state")
	replayCmd.Flags().Bool("json", false, "Print the final state as JSON")
}
