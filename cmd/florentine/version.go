package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/florentine"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of florentine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "florentine version %s\n", strings.TrimSpace(florentine.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
