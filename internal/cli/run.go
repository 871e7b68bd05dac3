package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/florentine/internal/adapters/file"
	"github.com/aretw0/florentine/internal/metrics"
	"github.com/aretw0/florentine/internal/presentation/tui"
	"github.com/aretw0/florentine/internal/validator"
	"github.com/aretw0/florentine/pkg/domain"
)

// RunOptions contains all the configuration for the migrate command.
type RunOptions struct {
	Input       string
	Output      string
	Pretty      bool
	Quiet       bool
	Summary     bool
	ConfigPath  string
	MetricsFile string
	LogLevel    string

	Stdout io.Writer
	Stderr io.Writer
}

// ErrReported marks an error whose message was already shown to the user.
var ErrReported = errors.New("error already reported")

// Execute loads the input workflow, migrates it and writes the output.
// The output file is only written after the whole rewrite succeeded.
// Any failure is printed to Stderr and returned wrapped with ErrReported.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	err := execute(ctx, opts)
	if err != nil {
		tui.NewProgress(opts.Stderr, false).Failure(Describe(err, opts.Input))
		return fmt.Errorf("%w: %w", ErrReported, err)
	}
	return nil
}

func execute(ctx context.Context, opts RunOptions) error {
	logger, err := createLogger(opts.Stderr, opts.LogLevel)
	if err != nil {
		return err
	}

	rec := metrics.NewRecorder()
	migrator, err := newMigrator(opts.ConfigPath, logger, rec)
	if err != nil {
		return err
	}

	progress := tui.NewProgress(opts.Stdout, opts.Quiet)

	progress.Loading(opts.Input)
	doc, err := file.Load(ctx, opts.Input)
	if err != nil {
		return err
	}
	progress.Found(doc.Len())

	out, report := migrator.Migrate(doc)
	progress.Substitutions(report)
	for _, p := range validator.DanglingLinks(out) {
		logger.Warn("link points at a missing node", "node_id", p.NodeID, "slot", p.Slot, "target", p.Target)
	}

	format := file.Compact
	if opts.Pretty {
		format = file.Indented
	}
	progress.Saving(opts.Output)
	if err := file.Save(ctx, opts.Output, out, format); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnexpected, err)
	}
	progress.Done(out.Len())

	if opts.MetricsFile != "" {
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Warn("failed to write metrics file", "path", opts.MetricsFile, "error", err)
		}
	}

	if opts.Summary && !opts.Quiet {
		rendered, err := tui.RenderSummary(opts.Stdout, report)
		if err != nil {
			logger.Warn("failed to render summary", "error", err)
		} else {
			fmt.Fprint(opts.Stdout, rendered)
		}
	}
	return nil
}
