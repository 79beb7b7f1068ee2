package raml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveIncludes_IdentityWithoutMacros(t *testing.T) {
	t.Parallel()
	text := "title: Music API\nversion: v1\n/songs:\n  get:\n"
	assert.Equal(t, text, ResolveIncludes(text, t.TempDir()))
}

func TestResolveIncludes_YAMLFileIsReencoded(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// Flow-style source proves the content is decoded and re-encoded, not
	// spliced verbatim.
	writeFile(t, dir, "chunk.yaml", `{description: "from include"}`)

	resolved := ResolveIncludes("!include chunk.yaml", dir)
	assert.Equal(t, "description: from include\n", resolved)
}

func TestResolveIncludes_RawFileBecomesQuotedLiteral(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "plain text payload")

	resolved := ResolveIncludes("description: !include notes.md", dir)
	assert.Equal(t, `description: "plain text payload"`, resolved)
}

func TestResolveIncludes_MissingFileLeavesPlaceholder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	resolved := ResolveIncludes("title: !include missing.yaml\nversion: v1\n", dir)
	assert.Contains(t, resolved, `"ERROR: Could not include missing.yaml:`)

	// The placeholder keeps the document parseable.
	spec, err := Parse(resolved, WithBaseDir(dir))
	require.NoError(t, err)
	assert.Contains(t, spec.Title, "ERROR: Could not include missing.yaml:")
	assert.Equal(t, "v1", spec.Version)
}

func TestResolveIncludes_MultipleMacrosKeepProcessingAfterFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "desc.yaml", "working include")

	text := "first: !include nope.txt\nsecond: !include desc.yaml"
	resolved := ResolveIncludes(text, dir)
	assert.Contains(t, resolved, "ERROR: Could not include nope.txt:")
	assert.Contains(t, resolved, "working include")
}

func TestResolveIncludes_UndecodableYAMLIncludeLeavesPlaceholder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "bad.raml", "key: [unclosed")

	resolved := ResolveIncludes("value: !include bad.raml", dir)
	assert.Contains(t, resolved, "ERROR: Could not include bad.raml:")
}
