package emitter

import (
	"bytes"
	"fmt"
	"text/template"
)

// RenderTemplate executes a template against typed data and returns the
// rendered text. Templates are package constants, so a parse failure is a
// programming error surfaced as a normal error for the CLI to report.
func RenderTemplate(name, text string, data any) (string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
