package main

import (
	"github.com/aretw0/florentine/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workflow.json>",
	Short: "Check the workflow links for consistency",
	Long:  `Reports links that point at node ids missing from the workflow. With --migrate, the migrated workflow is checked.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")
		return cli.RunValidate(cmd.Context(), cmd.OutOrStdout(), cli.ValidateOptions{
			Input:      args[0],
			Migrate:    migrate,
			ConfigPath: configPath(cmd),
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("migrate", false, "Validate the migrated workflow instead of the input")
}
