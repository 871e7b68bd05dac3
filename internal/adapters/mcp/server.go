package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/florentine/pkg/domain"
	"github.com/aretw0/florentine/pkg/migrate"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolMigrateWorkflow is the name of the migration tool.
const ToolMigrateWorkflow = "migrate_workflow"

// Migrator is the part of the library the MCP server needs.
type Migrator interface {
	MigrateBytes(data []byte, pretty bool) ([]byte, *migrate.Report, error)
}

// Server exposes the migration as an MCP tool.
type Server struct {
	migrator  Migrator
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance. A nil logger discards output.
func NewServer(m Migrator, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		migrator:  m,
		mcpServer: server.NewMCPServer("florentine-mcp", version, server.WithToolCapabilities(false)),
		logger:    logger,
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the tool over Server-Sent Events until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- sseServer.Start(addr)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	tool := mcp.NewTool(ToolMigrateWorkflow,
		mcp.WithDescription("Replace GroundingDino nodes in a node-graph workflow (JSON) with Florence-2 equivalents. Returns the migrated workflow JSON."),
		mcp.WithString("workflow", mcp.Required(), mcp.Description("The workflow document as a JSON object string")),
		mcp.WithBoolean("pretty", mcp.Description("Indent the returned JSON (optional)")),
	)
	s.mcpServer.AddTool(tool, s.handleMigrate)
}

func (s *Server) handleMigrate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflow, err := request.RequireString("workflow")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pretty := request.GetBool("pretty", false)

	out, report, err := s.migrator.MigrateBytes([]byte(workflow), pretty)
	if err != nil {
		s.logger.Warn("MCP migrate_workflow failed", "error", err, "kind", domain.Kind(err))
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", domain.Kind(err), err)), nil
	}

	s.logger.Debug("MCP migrate_workflow", "input_nodes", report.InputNodes, "output_nodes", report.OutputNodes)
	return mcp.NewToolResultText(string(out)), nil
}
