package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/florentine/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "florentine <input_workflow.json> <output_workflow.json>",
	Short: "Migrate ComfyUI workflows from GroundingDino to Florence-2",
	Long: `Florentine rewrites a ComfyUI workflow (API format) so that every
GroundingDino node is replaced by its Florence-2 equivalent.

Model loaders become Florence2ModelLoader, detection nodes become
Florence2Run, and GroundingDinoSAMSegment is expanded into a
Florence2Run -> Florence2toCoordinates -> SAM2 pipeline. All other nodes
are copied unchanged.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		pretty, _ := cmd.Flags().GetBool("pretty")
		quiet, _ := cmd.Flags().GetBool("quiet")
		summary, _ := cmd.Flags().GetBool("summary")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")

		return cli.Execute(cmd.Context(), cli.RunOptions{
			Input:       args[0],
			Output:      args[1],
			Pretty:      pretty,
			Quiet:       quiet,
			Summary:     summary,
			ConfigPath:  configPath(cmd),
			MetricsFile: metricsFile,
			LogLevel:    logLevel(cmd),
			Stdout:      cmd.OutOrStdout(),
			Stderr:      cmd.ErrOrStderr(),
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("pretty", false, "Indent the output JSON with two spaces")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.Flags().Bool("summary", false, "Print a Markdown summary of the migration")
	rootCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in text format to this file")

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML file overriding the Florence-2 parameters")
	rootCmd.PersistentFlags().String("log-level", "error", "Log level: debug, info, warn or error")
}

func configPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("config")
	return p
}

func logLevel(cmd *cobra.Command) string {
	l, _ := cmd.Flags().GetString("log-level")
	return l
}
