package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/florentine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workflow = `{
	"1": {"class_type": "GroundingDinoModelLoader", "inputs": {"model_name": "GroundingDINO_SwinT_OGC"}},
	"2": {"class_type": "LoadImage", "inputs": {"image": "cat.png"}, "_meta": {"title": "Load Image"}},
	"3": {"class_type": "SAMModelLoader", "inputs": {}},
	"4": {"class_type": "GroundingDinoSAMSegment", "inputs": {"dino_model": ["1", 0], "sam_model": ["3", 0], "image": ["2", 0], "prompt": "cat"}},
	"5": {"class_type": "GroundDinoTextToMask", "inputs": {"image": ["2", 0]}},
	"6": {"class_type": "PreviewImage", "inputs": {"images": ["4", 0]}}
}`

func setup(t *testing.T, content string) (dir, in, out string) {
	t.Helper()
	dir = t.TempDir()
	in = filepath.Join(dir, "workflow.json")
	out = filepath.Join(dir, "migrated.json")
	require.NoError(t, os.WriteFile(in, []byte(content), 0644))
	return dir, in, out
}

func TestExecute(t *testing.T) {
	dir, in, out := setup(t, workflow)
	metricsFile := filepath.Join(dir, "florentine.prom")
	var stdout, stderr bytes.Buffer

	err := Execute(context.Background(), RunOptions{
		Input: in, Output: out, Pretty: true, MetricsFile: metricsFile, LogLevel: "error",
		Stdout: &stdout, Stderr: &stderr,
	})
	require.NoError(t, err)
	assert.Empty(t, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc, err := domain.ParseWorkflow(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "4_florence", "4_coords"}, doc.IDs())
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"1\": {"))
	assert.Contains(t, string(data), `"_meta": {`)

	console := stdout.String()
	assert.Contains(t, console, "Found 6 nodes in workflow")
	assert.Contains(t, console, "✓ Migrating 4: GroundingDinoSAMSegment → Florence2Run + SAM2 pipeline")
	assert.Contains(t, console, "✓ Migrating 5: GroundDinoTextToMask → Florence2Run\n  ⚠ Warning: No prompt found, using default prompt")
	assert.Contains(t, console, "✅ Migration complete! 8 nodes in new workflow")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `florentine_nodes_migrated_total{rule="detect"} 1`)
	assert.Contains(t, string(prom), "florentine_nodes_created_total 2")
}

func TestExecute_CompactAndQuiet(t *testing.T) {
	_, in, out := setup(t, `{"1": {"class_type": "GroundingDinoModelLoader", "inputs": {}}}`)
	var stdout bytes.Buffer

	err := Execute(context.Background(), RunOptions{Input: in, Output: out, Quiet: true, LogLevel: "error", Stdout: &stdout, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `{"1":{"class_type":"Florence2ModelLoader","inputs":{"model":"microsoft/florence-2-large","precision":"fp16","attention":"sdpa"}}}`, string(data))
}

func TestExecute_Failures(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "missing.json")
		var stderr bytes.Buffer

		err := Execute(context.Background(), RunOptions{Input: in, Output: filepath.Join(dir, "o.json"), Stdout: &bytes.Buffer{}, Stderr: &stderr})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrReported))
		assert.Equal(t, "NotFound", domain.Kind(err))
		assert.Contains(t, stderr.String(), "❌ Error: Could not find input file '"+in+"'")
	})

	t.Run("Malformed", func(t *testing.T) {
		_, in, out := setup(t, `{"1": {"class_type": `)
		var stderr bytes.Buffer

		err := Execute(context.Background(), RunOptions{Input: in, Output: out, Stdout: &bytes.Buffer{}, Stderr: &stderr})
		require.Error(t, err)
		assert.Equal(t, "MalformedInput", domain.Kind(err))
		assert.Contains(t, stderr.String(), "❌ Error: Invalid JSON in input file")

		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr), "no output is written on failure")
	})

	t.Run("Unwritable", func(t *testing.T) {
		dir, in, _ := setup(t, `{}`)
		out := filepath.Join(dir, "missing-dir", "o.json")

		err := Execute(context.Background(), RunOptions{Input: in, Output: out, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Equal(t, "Unexpected", domain.Kind(err))
	})

	t.Run("BadConfig", func(t *testing.T) {
		dir, in, out := setup(t, `{}`)
		cfg := filepath.Join(dir, "florentine.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("loader:\n  unknown: 1\n"), 0644))
		var stderr bytes.Buffer

		err := Execute(context.Background(), RunOptions{Input: in, Output: out, ConfigPath: cfg, Stdout: &bytes.Buffer{}, Stderr: &stderr})
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Invalid config file '"+cfg+"'")
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		_, in, out := setup(t, `{}`)
		err := Execute(context.Background(), RunOptions{Input: in, Output: out, LogLevel: "loud", Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
		require.Error(t, err)
	})
}

func TestExecute_Summary(t *testing.T) {
	_, in, out := setup(t, workflow)
	var stdout bytes.Buffer

	err := Execute(context.Background(), RunOptions{Input: in, Output: out, Summary: true, LogLevel: "error", Stdout: &stdout, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Migration summary")
}

func TestRunGraph(t *testing.T) {
	_, in, _ := setup(t, workflow)

	var plain bytes.Buffer
	require.NoError(t, RunGraph(context.Background(), &plain, GraphOptions{Input: in}))
	assert.Contains(t, plain.String(), `n4[/"4: GroundingDinoSAMSegment"/]`)
	assert.NotContains(t, plain.String(), "n4_florence")

	var migrated bytes.Buffer
	require.NoError(t, RunGraph(context.Background(), &migrated, GraphOptions{Input: in, Migrate: true}))
	assert.Contains(t, migrated.String(), `n4_coords -- "coordinates" --> n4`)
	assert.Contains(t, migrated.String(), "class n4_florence created;")
}

func TestRunValidate(t *testing.T) {
	_, in, _ := setup(t, workflow)

	var out bytes.Buffer
	require.NoError(t, RunValidate(context.Background(), &out, ValidateOptions{Input: in, Migrate: true}))
	assert.Contains(t, out.String(), "Workflow is valid!")

	_, broken, _ := setup(t, `{"1": {"class_type": "PreviewImage", "inputs": {"images": ["9", 0]}}}`)
	err := RunValidate(context.Background(), &bytes.Buffer{}, ValidateOptions{Input: broken})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing node '9'")
}

func TestExecute_WarnsOnDanglingLinks(t *testing.T) {
	_, in, out := setup(t, `{"1": {"class_type": "PreviewImage", "inputs": {"images": ["9", 0]}}}`)
	var stderr bytes.Buffer

	err := Execute(context.Background(), RunOptions{Input: in, Output: out, Quiet: true, LogLevel: "warn", Stdout: &bytes.Buffer{}, Stderr: &stderr})
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "link points at a missing node")
}
