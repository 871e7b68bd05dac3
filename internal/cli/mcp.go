package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aretw0/florentine"
	"github.com/aretw0/florentine/internal/adapters/mcp"
)

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Transport  string
	Port       int
	ConfigPath string
	LogLevel   string
}

// RunMCP serves the migrate_workflow tool over the chosen transport.
// Logs always go to Stderr so they never corrupt JSON-RPC on Stdout.
func RunMCP(ctx context.Context, opts MCPOptions) error {
	logger, err := createLogger(os.Stderr, opts.LogLevel)
	if err != nil {
		return err
	}
	migrator, err := newMigrator(opts.ConfigPath, logger, nil)
	if err != nil {
		return err
	}

	srv := mcp.NewServer(migrator, florentine.Version, logger)

	switch opts.Transport {
	case "stdio":
		logger.Info("Starting Florentine MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting Florentine MCP Server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
