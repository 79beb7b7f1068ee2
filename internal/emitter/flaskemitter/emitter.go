// Package flaskemitter renders a Flask route/model skeleton from a
// normalized RAML spec.
package flaskemitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/apiforge/ramlgen/internal/emitter"
	"github.com/apiforge/ramlgen/internal/raml"
)

type templateData struct {
	AppName string
	Title   string
	Version string
	Models  []flaskModel
	Routes  []flaskRoute
}

type flaskModel struct {
	ClassName string
	Table     string
	Fields    []flaskField
}

type flaskField struct {
	Name   string
	Column string
}

type flaskRoute struct {
	FlaskPath  string
	FuncName   string
	Methods    string
	Args       string
	ModelClass string
	HasParams  bool
	FirstParam string
	HasPost    bool
	HasPut     bool
	HasDelete  bool
	HasPatch   bool
}

// Render returns the generated Flask application source.
func Render(ctx context.Context, spec *raml.NormalizedSpec) (string, error) {
	_ = ctx
	if spec == nil {
		return "", fmt.Errorf("flaskemitter: nil spec")
	}

	data := templateData{
		AppName: appName(spec.Title),
		Title:   spec.Title,
		Version: spec.Version,
	}
	data.Models = buildModels(spec)
	data.Routes = buildRoutes(spec)

	return emitter.RenderTemplate("flask", flaskTemplate, data)
}

// buildModels derives one SQLAlchemy model per root resource whose POST or
// PUT body yields inferred fields.
func buildModels(spec *raml.NormalizedSpec) []flaskModel {
	var models []flaskModel
	seen := make(map[string]bool)

	for _, endpoint := range spec.Endpoints {
		detail, ok := spec.EndpointDetails[endpoint]
		if !ok {
			continue
		}
		resource := raml.RootResource(endpoint)
		if resource == "" || seen[resource] {
			continue
		}

		fields := map[string]string{}
		for _, verb := range []raml.HttpMethod{raml.POST, raml.PUT} {
			md, ok := detail.Methods[verb]
			if !ok {
				continue
			}
			for name, fieldType := range raml.InferFields(md) {
				fields[name] = fieldType
			}
		}
		if len(fields) == 0 {
			continue
		}

		model := flaskModel{
			ClassName: raml.ModelClassName(resource),
			Table:     strings.ToLower(resource),
		}
		for _, name := range raml.SortedFieldNames(fields) {
			if name == "id" {
				continue
			}
			model.Fields = append(model.Fields, flaskField{Name: name, Column: sqlalchemyType(fields[name])})
		}
		models = append(models, model)
		seen[resource] = true
	}
	return models
}

func buildRoutes(spec *raml.NormalizedSpec) []flaskRoute {
	var routes []flaskRoute
	for _, endpoint := range spec.Endpoints {
		detail, ok := spec.EndpointDetails[endpoint]
		if !ok || len(detail.Methods) == 0 {
			continue
		}

		params := raml.PathParams(endpoint)
		resource := raml.RootResource(endpoint)
		route := flaskRoute{
			FlaskPath:  flaskPath(endpoint),
			ModelClass: raml.ModelClassName(resource),
			HasParams:  len(params) > 0,
			Args:       strings.Join(params, ", "),
		}
		if route.HasParams {
			route.FuncName = "handle_" + resource + "_with_id"
			route.FirstParam = params[0]
		} else {
			route.FuncName = "handle_" + resource
		}

		var methods []string
		for _, verb := range raml.Verbs {
			if _, ok := detail.Methods[verb]; ok {
				methods = append(methods, "'"+strings.ToUpper(string(verb))+"'")
			}
		}
		route.Methods = strings.Join(methods, ", ")

		_, route.HasPost = detail.Methods[raml.POST]
		if route.HasParams {
			_, route.HasPut = detail.Methods[raml.PUT]
			_, route.HasDelete = detail.Methods[raml.DELETE]
			_, route.HasPatch = detail.Methods[raml.PATCH]
		}

		routes = append(routes, route)
	}
	return routes
}

// flaskPath rewrites RAML path parameters into Flask converters:
// /users/{id} -> /users/<id>.
func flaskPath(path string) string {
	path = strings.ReplaceAll(path, "{", "<")
	return strings.ReplaceAll(path, "}", ">")
}

func appName(title string) string {
	name := strings.ToLower(title)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func sqlalchemyType(fieldType string) string {
	switch fieldType {
	case "integer":
		return "db.Integer"
	case "number":
		return "db.Float"
	case "boolean":
		return "db.Boolean"
	case "array":
		return "db.PickleType"
	case "object":
		return "db.JSON"
	default:
		return "db.String(255)"
	}
}
