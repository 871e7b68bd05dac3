package main

import (
	"github.com/aretw0/florentine/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <workflow.json>",
	Short: "Export the workflow graph visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) of the workflow's node links. With --migrate, the migrated workflow is drawn with rewritten and created nodes highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")
		return cli.RunGraph(cmd.Context(), cmd.OutOrStdout(), cli.GraphOptions{
			Input:      args[0],
			Migrate:    migrate,
			ConfigPath: configPath(cmd),
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("migrate", false, "Draw the migrated workflow instead of the input")
}
