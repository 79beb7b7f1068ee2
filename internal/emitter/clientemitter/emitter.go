// Package clientemitter renders a Python requests client from a normalized
// RAML spec.
package clientemitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/apiforge/ramlgen/internal/emitter"
	"github.com/apiforge/ramlgen/internal/raml"
)

// requestVerbs are the methods the client emits calls for; OPTIONS and HEAD
// carry no useful client surface.
var requestVerbs = []raml.HttpMethod{raml.GET, raml.POST, raml.PUT, raml.DELETE, raml.PATCH}

type templateData struct {
	ClassName string
	Title     string
	Version   string
	Methods   []clientMethod
}

type clientMethod struct {
	Name        string
	Signature   string
	Description string
	DocParams   []string
	URLExpr     string
	Verb        string
	HasQuery    bool
	HasBody     bool
}

// Render returns the generated client source.
func Render(ctx context.Context, spec *raml.NormalizedSpec) (string, error) {
	_ = ctx
	if spec == nil {
		return "", fmt.Errorf("clientemitter: nil spec")
	}

	data := templateData{
		ClassName: raml.ClassName(spec.Title),
		Title:     spec.Title,
		Version:   spec.Version,
	}

	for _, endpoint := range spec.Endpoints {
		detail, ok := spec.EndpointDetails[endpoint]
		if !ok {
			continue
		}
		for _, verb := range requestVerbs {
			md, ok := detail.Methods[verb]
			if !ok {
				continue
			}
			data.Methods = append(data.Methods, buildMethod(endpoint, verb, md))
		}
	}

	return emitter.RenderTemplate("client", clientTemplate, data)
}

func buildMethod(endpoint string, verb raml.HttpMethod, md raml.MethodDetail) clientMethod {
	m := clientMethod{
		Name:        raml.MethodName(verb, endpoint),
		Description: md.Description,
		URLExpr:     "{self.base_url}" + endpoint,
		Verb:        string(verb),
	}
	if m.Description == "" {
		m.Description = strings.ToUpper(string(verb)) + " " + endpoint
	}

	params := []string{"self"}
	for _, p := range raml.PathParams(endpoint) {
		params = append(params, p+": str")
		m.DocParams = append(m.DocParams, p+": Path parameter for "+p)
	}
	if verb == raml.GET && len(md.QueryParameters) > 0 {
		params = append(params, "params: Optional[Dict[str, Any]] = None")
		m.DocParams = append(m.DocParams, "params: Query parameters")
		m.HasQuery = true
	}
	switch verb {
	case raml.POST, raml.PUT, raml.PATCH:
		params = append(params, "data: Dict[str, Any]")
		m.DocParams = append(m.DocParams, "data: Request body data")
		m.HasBody = true
	}
	m.Signature = strings.Join(params, ", ")
	return m
}
