package florentine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/florentine/internal/adapters/file"
	"github.com/aretw0/florentine/pkg/domain"
	"github.com/aretw0/florentine/pkg/migrate"
)

// Version is the release of the florentine module and CLI.
const Version = "0.3.0"

// Observer receives the report of every completed rewrite.
type Observer func(report *migrate.Report)

// Migrator is the high-level entry point for the library.
// It wraps the rewriter and the file collaborators behind a small API.
type Migrator struct {
	rewriter  *migrate.Rewriter
	settings  migrate.Settings
	logger    *slog.Logger
	observers []Observer
}

// Option defines a functional option for configuring the Migrator.
type Option func(*Migrator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Migrator) {
		m.logger = logger
	}
}

// WithSettings overrides the constants written into replacement nodes.
func WithSettings(settings migrate.Settings) Option {
	return func(m *Migrator) {
		m.settings = settings
	}
}

// WithObserver registers a callback invoked after each rewrite.
func WithObserver(obs Observer) Option {
	return func(m *Migrator) {
		m.observers = append(m.observers, obs)
	}
}

// New initializes a Migrator with the stock Florence-2 settings unless
// overridden by options.
func New(opts ...Option) *Migrator {
	m := &Migrator{settings: migrate.DefaultSettings()}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.rewriter = migrate.NewRewriter(m.settings, m.logger)
	return m
}

// Settings returns the settings in effect.
func (m *Migrator) Settings() migrate.Settings {
	return m.settings
}

// Migrate rewrites doc and notifies observers. doc is left untouched.
func (m *Migrator) Migrate(doc *domain.Workflow) (*domain.Workflow, *migrate.Report) {
	out, report := m.rewriter.Rewrite(doc)
	for _, obs := range m.observers {
		obs(report)
	}
	return out, report
}

// MigrateBytes decodes a JSON document, rewrites it and encodes the result.
func (m *Migrator) MigrateBytes(data []byte, pretty bool) ([]byte, *migrate.Report, error) {
	doc, err := domain.ParseWorkflow(data)
	if err != nil {
		return nil, nil, err
	}

	out, report := m.Migrate(doc)

	var buf bytes.Buffer
	if err := file.Encode(&buf, out, formatOf(pretty)); err != nil {
		return nil, report, fmt.Errorf("%w: %v", domain.ErrUnexpected, err)
	}
	return buf.Bytes(), report, nil
}

// MigrateFile reads inputPath, rewrites it and writes outputPath. The output
// is only written once the whole rewrite has succeeded.
func (m *Migrator) MigrateFile(ctx context.Context, inputPath, outputPath string, pretty bool) (*migrate.Report, error) {
	doc, err := file.Load(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	out, report := m.Migrate(doc)

	if err := file.Save(ctx, outputPath, out, formatOf(pretty)); err != nil {
		return report, err
	}
	return report, nil
}

func formatOf(pretty bool) file.Format {
	if pretty {
		return file.Indented
	}
	return file.Compact
}
