package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineRAML = `title: Music API
version: v1
/songs:
  get:
    description: List songs
  post:
    body:
      application/json:
        example: '{"title": "Blue", "plays": 10}'
  /{songId}:
    get:
    delete:
`

func writeSpec(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "api.raml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipeline_GeneratesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)
	out := filepath.Join(dir, "out")

	err := execRoot(t, "generate", "--input", spec, "--out", out, "--tool-name", "music-api")
	require.NoError(t, err)

	client, err := os.ReadFile(filepath.Join(out, "music_api_client.py"))
	require.NoError(t, err)
	assert.Contains(t, string(client), "class MusicApiClient:")

	app, err := os.ReadFile(filepath.Join(out, "app.py"))
	require.NoError(t, err)
	assert.Contains(t, string(app), "class Song(db.Model):")

	tests, err := os.ReadFile(filepath.Join(out, "test_music_api.py"))
	require.NoError(t, err)
	assert.Contains(t, string(tests), "class TestSongsPostPositive:")
}

func TestPipeline_ClientOnly(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)
	out := filepath.Join(dir, "out")

	err := execRoot(t, "generate", "--input", spec, "--out", out, "--client")
	require.NoError(t, err)

	// Tool name derives from the spec title when not overridden.
	_, err = os.Stat(filepath.Join(out, "music_api_client.py"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "app.py"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "test_music_api.py"))
	assert.True(t, os.IsNotExist(err))
}

func TestPipeline_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)
	out := filepath.Join(dir, "out")

	err := execRoot(t, "generate", "--input", spec, "--out", out, "--dry-run")
	require.NoError(t, err)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestPipeline_RefusesNonEmptyOutDirWithoutForce(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, pipelineRAML)
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "keep.txt"), []byte("x"), 0o644))

	err := execRoot(t, "generate", "--input", spec, "--out", out)
	require.ErrorIs(t, err, ErrUsage)

	err = execRoot(t, "generate", "--input", spec, "--out", out, "--force")
	require.NoError(t, err)
}

func TestPipeline_IncludeResolvedRelativeToSpec(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "desc.yaml"), []byte("Song collection"), 0o644))
	spec := writeSpec(t, dir, "title: Music API\n/songs:\n  description: !include desc.yaml\n  get:\n")
	out := filepath.Join(dir, "out")

	err := execRoot(t, "generate", "--input", spec, "--out", out, "--client")
	require.NoError(t, err)
}

func TestPipeline_UnparseableSpecIsUsageError(t *testing.T) {
	dir := t.TempDir()
	spec := writeSpec(t, dir, "")

	err := execRoot(t, "generate", "--input", spec, "--out", filepath.Join(dir, "out"))
	require.ErrorIs(t, err, ErrUsage)
}

func TestPipeline_MissingSpecFileIsUsageError(t *testing.T) {
	dir := t.TempDir()

	err := execRoot(t, "generate", "--input", filepath.Join(dir, "absent.raml"), "--out", filepath.Join(dir, "out"))
	require.ErrorIs(t, err, ErrUsage)
}
