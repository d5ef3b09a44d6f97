package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/compact"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of compact",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "compact version %s\n", strings.TrimSpace(compact.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
