// Package emitter holds the file-planning and writing helpers shared by the
// artifact emitters.
package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// PlannedFile describes a file an emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Plan lists the files in deterministic path order.
func Plan(files map[string][]byte) []PlannedFile {
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, filepath.ToSlash(p))
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}
	return planned
}

// WriteFiles writes the file map under outDir. An existing non-empty output
// directory is refused unless force is set. Each file is written atomically
// via a temp file and rename.
func WriteFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	if err := ValidateOutputDir(abs, force); err != nil {
		return err
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}

// ValidateOutputDir checks whether outDir can receive generated files.
func ValidateOutputDir(abs string, force bool) error {
	st, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access output directory %q: %w", abs, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("output path %q is not a directory", abs)
	}
	if force {
		return nil
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return fmt.Errorf("cannot read output directory %q: %w", abs, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("output directory %q is not empty (use --force to overwrite)", abs)
	}
	return nil
}
