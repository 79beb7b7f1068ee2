package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_WritesYAMLDocument(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)
	target := filepath.Join(dir, "api.openapi.yaml")

	err := execRoot(t, "convert", "--input", spec, "--out", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "openapi: 3.0.3")
	assert.Contains(t, text, "title: Music API")
	assert.Contains(t, text, "/songs/{songId}")
}

func TestConvert_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)
	target := filepath.Join(dir, "api.openapi.json")

	err := execRoot(t, "convert", "--input", spec, "--format", "json", "--out", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
}

func TestConvert_DefaultTargetDerivedFromInput(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)

	err := execRoot(t, "convert", "--input", spec)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "api.openapi.yaml"))
	require.NoError(t, err)
}

func TestConvert_RefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)
	target := filepath.Join(dir, "existing.yaml")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))

	err := execRoot(t, "convert", "--input", spec, "--out", target)
	require.ErrorIs(t, err, ErrUsage)

	err = execRoot(t, "convert", "--input", spec, "--out", target, "--force")
	require.NoError(t, err)
}

func TestConvert_BadFormatIsUsageError(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)

	err := execRoot(t, "convert", "--input", spec, "--format", "toml")
	require.ErrorIs(t, err, ErrUsage)
}

func TestConvert_MissingInputIsUsageError(t *testing.T) {
	err := execRoot(t, "convert")
	require.ErrorIs(t, err, ErrUsage)
}
