package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aretw0/florentine/pkg/domain"
)

// Format selects how a workflow is serialized.
type Format int

const (
	// Compact writes the document on a single line.
	Compact Format = iota
	// Indented writes the document with two-space indentation.
	Indented
)

// Load reads and decodes a workflow document.
// A missing path yields domain.ErrNotFound; invalid JSON or a document that
// is not an object of node records yields domain.ErrMalformedInput.
func Load(ctx context.Context, path string) (*domain.Workflow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not find input file %q: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	doc, err := domain.ParseWorkflow(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in input file %q: %w", path, err)
	}
	return doc, nil
}

// Encode serializes doc to w. Non-ASCII text and HTML characters are
// written as-is.
func Encode(w io.Writer, doc *domain.Workflow, format Format) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if format == Indented {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode workflow: %w", err)
	}
	_, err := w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return err
}

// Save writes doc to path atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination,
// so a failed run never leaves a partial output file behind.
func Save(ctx context.Context, path string, doc *domain.Workflow, format Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to replace existing output file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
