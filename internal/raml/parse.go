package raml

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrorCode categorizes parser errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError   ErrorCode = "InputError"
	IncludeError ErrorCode = "IncludeError"
	ParseError   ErrorCode = "ParseError"
)

// RAMLError is a structured error with an optional location and cause.
type RAMLError struct {
	Code     ErrorCode
	Message  string
	Location string // file path, when known
	Cause    error
}

func (e *RAMLError) Error() string { return e.Message }
func (e *RAMLError) Unwrap() error { return e.Cause }

// Settings configures parser behavior.
type Settings struct {
	// BaseDir resolves !include tokens; defaults to the working directory.
	BaseDir string
	// Logger receives progress and skipped-entry diagnostics.
	Logger *slog.Logger
}

// Option mutates Settings.
type Option func(*Settings)

func WithBaseDir(dir string) Option    { return func(s *Settings) { s.BaseDir = dir } }
func WithLogger(l *slog.Logger) Option { return func(s *Settings) { s.Logger = l } }

// Parse expands includes, decodes the RAML document, and normalizes it into
// a NormalizedSpec. It fails with a RAMLError (code ParseError) when the
// document is empty, null, or not decodable as a YAML mapping. Malformed
// resource or method sub-entries are skipped with a warning instead of
// aborting the parse, so a non-error return is always a complete spec.
func Parse(ramlText string, opts ...Option) (*NormalizedSpec, error) {
	settings := Settings{}
	for _, opt := range opts {
		opt(&settings)
	}
	log := settings.Logger
	if log == nil {
		log = slog.Default()
	}

	processed := ResolveIncludes(ramlText, settings.BaseDir)

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(processed), &doc); err != nil {
		return nil, &RAMLError{Code: ParseError, Message: fmt.Sprintf("raml: decode document: %v", err), Cause: err}
	}

	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode || len(root.Content) == 0 {
		return nil, &RAMLError{Code: ParseError, Message: "raml: document is empty or not a mapping"}
	}

	spec := &NormalizedSpec{
		Title:           "API",
		Version:         "v1",
		Protocols:       []string{},
		MediaType:       []string{},
		EndpointDetails: make(map[string]EndpointDetail),
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := resolveAlias(root.Content[i+1])
		switch {
		case strings.HasPrefix(key, "/"):
			walkResource(key, val, spec, log)
		case key == "title":
			if v := scalarString(val); v != "" {
				spec.Title = v
			}
		case key == "version":
			if v := scalarString(val); v != "" {
				spec.Version = v
			}
		case key == "baseUri":
			spec.BaseURI = scalarString(val)
		case key == "protocols":
			spec.Protocols = stringList(val)
		case key == "mediaType":
			spec.MediaType = stringList(val)
		}
	}

	log.Info("parsed raml document", "title", spec.Title, "endpoints", len(spec.Endpoints))
	return spec, nil
}

// walkResource records the resource at path and then recurses into child
// resources (keys starting with "/") in document order, giving the
// depth-first pre-order the generators rely on. Child paths
// are the literal concatenation of the parent path and the child key.
func walkResource(path string, node *yaml.Node, spec *NormalizedSpec, log *slog.Logger) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		log.Warn("skipping malformed resource", "path", path)
		return
	}

	detail := EndpointDetail{
		Methods:     make(map[HttpMethod]MethodDetail),
		DisplayName: path,
	}

	type childResource struct {
		path string
		node *yaml.Node
	}
	var children []childResource

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := resolveAlias(node.Content[i+1])
		switch {
		case strings.HasPrefix(key, "/"):
			children = append(children, childResource{path + key, val})
		case isVerb(key):
			md, ok := normalizeMethodNode(val, log, path, key)
			if ok {
				detail.Methods[HttpMethod(key)] = md
			}
		case key == "description":
			detail.Description = scalarString(val)
		case key == "displayName":
			if v := scalarString(val); v != "" {
				detail.DisplayName = v
			}
		}
	}

	if _, seen := spec.EndpointDetails[path]; !seen {
		spec.Endpoints = append(spec.Endpoints, path)
	} else {
		log.Warn("duplicate resource path, keeping last definition", "path", path)
	}
	spec.EndpointDetails[path] = detail

	for _, c := range children {
		walkResource(c.path, c.node, spec, log)
	}
}

// normalizeMethodNode decodes a verb's value node and normalizes it. An
// absent or null method body is valid and yields an empty MethodDetail; a
// present non-mapping body is skipped.
func normalizeMethodNode(node *yaml.Node, log *slog.Logger, path, verb string) (MethodDetail, bool) {
	if node == nil || isNullNode(node) {
		return MethodDetail{QueryParameters: map[string]any{}, Headers: map[string]any{}}, true
	}
	if node.Kind != yaml.MappingNode {
		log.Warn("skipping malformed method entry", "path", path, "method", verb)
		return MethodDetail{}, false
	}
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		log.Warn("skipping undecodable method entry", "path", path, "method", verb, "err", err)
		return MethodDetail{}, false
	}
	return NormalizeMethod(raw), true
}

// NormalizeMethod extracts the uniform method shape from a raw method
// mapping. Description defaults to the empty string, queryParameters and
// headers to empty mappings; body and responses are passed through
// untransformed. The operation is idempotent: re-normalizing a normalized
// method's own fields yields an identical structure.
func NormalizeMethod(raw map[string]any) MethodDetail {
	md := MethodDetail{
		QueryParameters: map[string]any{},
		Headers:         map[string]any{},
	}
	if raw == nil {
		return md
	}
	if v, ok := raw["description"].(string); ok {
		md.Description = v
	}
	if v, ok := raw["queryParameters"].(map[string]any); ok {
		md.QueryParameters = v
	}
	if v, ok := raw["headers"].(map[string]any); ok {
		md.Headers = v
	}
	if v, ok := raw["body"].(map[string]any); ok {
		md.Body = v
	}
	if v, ok := raw["responses"].(map[string]any); ok {
		md.Responses = make(map[string]any, len(v))
		for code, resp := range v {
			md.Responses[code] = resp
		}
	}
	return md
}

// documentRoot unwraps the yaml document node down to its mapping content.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	n := doc
	for n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return resolveAlias(n)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNullNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || n.Value == "")
}

func scalarString(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return strings.TrimSpace(n.Value)
}

// stringList accepts either a scalar or a sequence; RAML allows both forms
// for protocols and mediaType.
func stringList(n *yaml.Node) []string {
	n = resolveAlias(n)
	if n == nil {
		return []string{}
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if v := strings.TrimSpace(n.Value); v != "" {
			return []string{v}
		}
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if v := scalarString(item); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	return []string{}
}
