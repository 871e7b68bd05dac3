package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/florentine/internal/adapters/file"
	"github.com/aretw0/florentine/internal/presentation/graph"
	"github.com/aretw0/florentine/internal/logging"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	Input      string
	Migrate    bool
	ConfigPath string
}

// RunGraph prints a Mermaid diagram of a workflow. With Migrate set, the
// rewritten document is drawn with migrated and created nodes highlighted.
func RunGraph(ctx context.Context, w io.Writer, opts GraphOptions) error {
	doc, err := file.Load(ctx, opts.Input)
	if err != nil {
		return err
	}

	if !opts.Migrate {
		fmt.Fprint(w, graph.GenerateMermaid(doc, nil))
		return nil
	}

	migrator, err := newMigrator(opts.ConfigPath, logging.NewNop(), nil)
	if err != nil {
		return err
	}
	out, report := migrator.Migrate(doc)
	fmt.Fprint(w, graph.GenerateMermaid(out, graph.OverlayFromReport(report)))
	return nil
}
