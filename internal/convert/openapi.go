// Package convert maps a normalized RAML spec onto an OpenAPI 3 document.
package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/apiforge/ramlgen/internal/raml"
)

// ToOpenAPI builds an OpenAPI 3 document from the normalized spec. The
// mapping is structural: endpoints become path items, verbs become
// operations, query parameters and headers become parameters, and bodies
// keep their media types. Schema detail beyond declared properties and
// examples is not synthesized.
func ToOpenAPI(spec *raml.NormalizedSpec) (*openapi3.T, error) {
	if spec == nil {
		return nil, fmt.Errorf("convert: nil spec")
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   spec.Title,
			Version: spec.Version,
		},
		Paths: openapi3.Paths{},
	}

	if spec.BaseURI != "" {
		url := strings.ReplaceAll(spec.BaseURI, "{version}", spec.Version)
		doc.Servers = openapi3.Servers{&openapi3.Server{URL: url}}
	}

	for _, endpoint := range spec.Endpoints {
		detail, ok := spec.EndpointDetails[endpoint]
		if !ok {
			continue
		}
		item := &openapi3.PathItem{Description: detail.Description}
		for _, verb := range raml.Verbs {
			md, ok := detail.Methods[verb]
			if !ok {
				continue
			}
			setOperation(item, verb, buildOperation(endpoint, md))
		}
		doc.Paths[endpoint] = item
	}

	return doc, nil
}

// ToYAML serializes the document through its JSON form; YAML is a superset
// of JSON, so the round trip preserves structure.
func ToYAML(doc *openapi3.T) ([]byte, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("convert: marshal document: %w", err)
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("convert: reparse document: %w", err)
	}
	return yaml.Marshal(tree)
}

func buildOperation(endpoint string, md raml.MethodDetail) *openapi3.Operation {
	op := &openapi3.Operation{
		Description: md.Description,
		Responses:   openapi3.Responses{},
	}

	for _, name := range raml.PathParams(endpoint) {
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				Name:     name,
				In:       "path",
				Required: true,
				Schema:   &openapi3.SchemaRef{Value: &openapi3.Schema{Type: "string"}},
			},
		})
	}
	op.Parameters = append(op.Parameters, paramList(md.QueryParameters, "query")...)
	op.Parameters = append(op.Parameters, paramList(md.Headers, "header")...)

	if content := bodyContent(md.Body); len(content) > 0 {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{Content: content},
		}
	}

	for code, raw := range md.Responses {
		desc := ""
		var content openapi3.Content
		if rm, ok := raw.(map[string]any); ok {
			if d, ok := rm["description"].(string); ok {
				desc = d
			}
			if body, ok := rm["body"].(map[string]any); ok {
				content = bodyContent(body)
			}
		}
		descCopy := desc
		op.Responses[code] = &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: &descCopy, Content: content},
		}
	}
	if len(op.Responses) == 0 {
		empty := ""
		op.Responses["200"] = &openapi3.ResponseRef{Value: &openapi3.Response{Description: &empty}}
	}

	return op
}

func paramList(params map[string]any, in string) openapi3.Parameters {
	var out openapi3.Parameters
	for _, name := range sortedKeys(params) {
		p := &openapi3.Parameter{
			Name:   name,
			In:     in,
			Schema: &openapi3.SchemaRef{Value: &openapi3.Schema{Type: "string"}},
		}
		if def, ok := params[name].(map[string]any); ok {
			if d, ok := def["description"].(string); ok {
				p.Description = d
			}
			if r, ok := def["required"].(bool); ok {
				p.Required = r
			}
			if t, ok := def["type"].(string); ok && t != "" {
				p.Schema.Value.Type = t
			}
		}
		out = append(out, &openapi3.ParameterRef{Value: p})
	}
	return out
}

func bodyContent(body map[string]any) openapi3.Content {
	if len(body) == 0 {
		return nil
	}
	content := openapi3.Content{}
	for _, mime := range sortedKeys(body) {
		mt := &openapi3.MediaType{}
		if entry, ok := body[mime].(map[string]any); ok {
			if ex, ok := entry["example"]; ok {
				mt.Example = ex
			}
			if schema, ok := entry["schema"].(map[string]any); ok {
				mt.Schema = &openapi3.SchemaRef{Value: schemaFromMap(schema)}
			}
		}
		content[mime] = mt
	}
	return content
}

func schemaFromMap(m map[string]any) *openapi3.Schema {
	s := &openapi3.Schema{Type: "object"}
	if t, ok := m["type"].(string); ok && t != "" {
		s.Type = t
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(openapi3.Schemas, len(props))
		for _, name := range sortedKeys(props) {
			prop := &openapi3.Schema{Type: "string"}
			if pm, ok := props[name].(map[string]any); ok {
				if t, ok := pm["type"].(string); ok && t != "" {
					prop.Type = t
				}
			}
			s.Properties[name] = &openapi3.SchemaRef{Value: prop}
		}
	}
	return s
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func setOperation(item *openapi3.PathItem, verb raml.HttpMethod, op *openapi3.Operation) {
	switch verb {
	case raml.GET:
		item.Get = op
	case raml.POST:
		item.Post = op
	case raml.PUT:
		item.Put = op
	case raml.DELETE:
		item.Delete = op
	case raml.PATCH:
		item.Patch = op
	case raml.OPTIONS:
		item.Options = op
	case raml.HEAD:
		item.Head = op
	}
}
