package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/florentine/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the migration HTTP server",
	Long: `Starts a stateless HTTP server exposing the migration as an API.

  POST /migrate[?pretty=true]  body: workflow JSON, response: migrated workflow
  GET  /health
  GET  /metrics                Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.RunServe(ctx, cli.ServeOptions{
			Port:       port,
			ConfigPath: configPath(cmd),
			LogLevel:   logLevel(cmd),
			Stdout:     cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
