package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-sod/knn/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), buildinfo.Graffiti)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Info.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
