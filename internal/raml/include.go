package raml

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var includeRe = regexp.MustCompile(`!include\s+(\S+)`)

// ResolveIncludes expands every `!include <path>` macro in the raw RAML text
// before the document is decoded. Referenced paths are resolved by joining
// baseDir and the include token; baseDir defaults to the current working
// directory when empty.
//
// YAML-like files (.raml, .yaml, .yml) are decoded and re-encoded so the
// spliced text is well-formed YAML regardless of the source formatting.
// Everything else is spliced as a double-quoted string literal; embedded
// quotes are the caller's responsibility.
//
// A failed include never aborts resolution: the macro is replaced by an
// inline placeholder string and the remaining matches are still processed.
func ResolveIncludes(content, baseDir string) string {
	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		} else {
			baseDir = "."
		}
	}

	return includeRe.ReplaceAllStringFunc(content, func(macro string) string {
		incPath := includeRe.FindStringSubmatch(macro)[1]
		full := filepath.Join(baseDir, incPath)

		data, err := os.ReadFile(full)
		if err != nil {
			return includePlaceholder(incPath, err)
		}

		if hasYAMLExt(incPath) {
			var decoded any
			if err := yaml.Unmarshal(data, &decoded); err != nil {
				return includePlaceholder(incPath, err)
			}
			reencoded, err := yaml.Marshal(decoded)
			if err != nil {
				return includePlaceholder(incPath, err)
			}
			return string(reencoded)
		}

		return `"` + string(data) + `"`
	})
}

func hasYAMLExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".raml":
		return true
	}
	return false
}

func includePlaceholder(path string, err error) string {
	return fmt.Sprintf("\"ERROR: Could not include %s: %v\"", path, err)
}
