package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// stubGenerate swaps the generate runner for a capture function and returns
// a pointer that receives the resolved config.
func stubGenerate(t *testing.T) **GenerateConfig {
	t.Helper()
	var captured *GenerateConfig
	orig := generateRunner
	generateRunner = func(ctx context.Context, cfg *GenerateConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { generateRunner = orig })
	return &captured
}

func TestGenerate_FlagsOnly(t *testing.T) {
	captured := stubGenerate(t)

	err := execRoot(t, "generate", "--input", "api.raml", "--out", "./dist", "--tool-name", "My Tool")
	require.NoError(t, err)

	cfg := *captured
	require.NotNil(t, cfg)
	assert.Equal(t, "api.raml", cfg.Input)
	assert.Equal(t, "./dist", cfg.Out)
	assert.Equal(t, "My Tool", cfg.ToolName)
	// No artifact selection means all three.
	assert.True(t, cfg.Client)
	assert.True(t, cfg.Server)
	assert.True(t, cfg.Tests)
}

func TestGenerate_ArtifactSelectionIsExclusive(t *testing.T) {
	captured := stubGenerate(t)

	err := execRoot(t, "generate", "--input", "api.raml", "--client", "--tests")
	require.NoError(t, err)

	cfg := *captured
	assert.True(t, cfg.Client)
	assert.False(t, cfg.Server)
	assert.True(t, cfg.Tests)
}

func TestGenerate_ConfigFileWithFlagOverrides(t *testing.T) {
	captured := stubGenerate(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input: from-config.raml\nout: config-out\nserver: true\n"), 0o644))

	err := execRoot(t, "--config", cfgPath, "generate", "--out", "flag-out")
	require.NoError(t, err)

	cfg := *captured
	assert.Equal(t, "from-config.raml", cfg.Input)
	assert.Equal(t, "flag-out", cfg.Out)
	assert.True(t, cfg.Server)
	assert.False(t, cfg.Client)
	assert.Equal(t, cfgPath, cfg.ConfigPath)
}

func TestGenerate_ConfigFileKeyAliases(t *testing.T) {
	captured := stubGenerate(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input: x.raml\ntool-name: aliased\ndry_run: \"yes\"\n"), 0o644))

	err := execRoot(t, "--config", cfgPath, "generate")
	require.NoError(t, err)

	cfg := *captured
	assert.Equal(t, "aliased", cfg.ToolName)
	assert.True(t, cfg.DryRun)
}

func TestGenerate_UnknownConfigFieldIsUsageError(t *testing.T) {
	stubGenerate(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input: x.raml\nbogus: value\n"), 0o644))

	err := execRoot(t, "--config", cfgPath, "generate")
	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "bogus")
}

func TestGenerate_MissingInputIsUsageError(t *testing.T) {
	stubGenerate(t)

	err := execRoot(t, "generate")
	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "--input is required")
}

func TestGenerate_MissingConfigFileIsUsageError(t *testing.T) {
	stubGenerate(t)

	err := execRoot(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "generate")
	require.ErrorIs(t, err, ErrUsage)
}

func TestResolveToolName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "my-tool", resolveToolName("My Tool", "ignored"))
	assert.Equal(t, "music-api", resolveToolName("", "Music API"))
	assert.Equal(t, "generated-api", resolveToolName("", ""))
	assert.Equal(t, "generated-api", resolveToolName("///", ""))
}

func TestSanitizeToolName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "my-api", sanitizeToolName("  My API "))
	assert.Equal(t, "a-b", sanitizeToolName("a/b"))
	assert.Equal(t, "", sanitizeToolName("***"))
}
