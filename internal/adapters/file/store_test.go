package file

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/florentine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{"1": {"class_type": "CLIPTextEncode", "inputs": {"text": "café <b>", "clip": ["4", 1]}}}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"1": `), 0644))

		_, err := Load(ctx, path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMalformedInput))
	})

	t.Run("Valid", func(t *testing.T) {
		path := filepath.Join(dir, "ok.json")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

		doc, err := Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, doc.IDs())
	})

	t.Run("CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Load(canceled, filepath.Join(dir, "ok.json"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEncode(t *testing.T) {
	doc, err := domain.ParseWorkflow([]byte(sample))
	require.NoError(t, err)

	var compact bytes.Buffer
	require.NoError(t, Encode(&compact, doc, Compact))
	assert.Equal(t, `{"1":{"class_type":"CLIPTextEncode","inputs":{"text":"café <b>","clip":["4",1]}}}`, compact.String())

	var indented bytes.Buffer
	require.NoError(t, Encode(&indented, doc, Indented))
	assert.Equal(t, `{
  "1": {
    "class_type": "CLIPTextEncode",
    "inputs": {
      "text": "café <b>",
      "clip": [
        "4",
        1
      ]
    }
  }
}`, indented.String())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	path := filepath.Join(dir, "out.json")

	doc, err := domain.ParseWorkflow([]byte(sample))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("old content"), 0644))
	require.NoError(t, Save(ctx, path, doc, Compact))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, sample, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSave_MissingDirectory(t *testing.T) {
	doc := domain.NewWorkflow()
	err := Save(context.Background(), filepath.Join(t.TempDir(), "no", "such", "out.json"), doc, Compact)
	require.Error(t, err)
	assert.Equal(t, "Unexpected", domain.Kind(err))
}
