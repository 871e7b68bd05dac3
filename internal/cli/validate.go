package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/florentine/internal/adapters/file"
	"github.com/aretw0/florentine/internal/logging"
	"github.com/aretw0/florentine/internal/validator"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Input      string
	Migrate    bool
	ConfigPath string
}

// RunValidate checks that every link of a workflow resolves. With Migrate
// set, the migrated document is checked instead.
func RunValidate(ctx context.Context, w io.Writer, opts ValidateOptions) error {
	doc, err := file.Load(ctx, opts.Input)
	if err != nil {
		return err
	}

	if opts.Migrate {
		migrator, err := newMigrator(opts.ConfigPath, logging.NewNop(), nil)
		if err != nil {
			return err
		}
		doc, _ = migrator.Migrate(doc)
	}

	if err := validator.ValidateWorkflow(doc); err != nil {
		return err
	}
	fmt.Fprintln(w, "Workflow is valid! ✅")
	return nil
}
