// Package pytestemitter renders a pytest suite exercising the API described
// by a normalized RAML spec. Requests are mocked, so the suite runs without
// a live server.
package pytestemitter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apiforge/ramlgen/internal/emitter"
	"github.com/apiforge/ramlgen/internal/raml"
)

var testVerbs = []raml.HttpMethod{raml.GET, raml.POST, raml.PUT, raml.DELETE, raml.PATCH}

type templateData struct {
	Title string
	Cases []testCase
}

type testCase struct {
	Verb         string // upper-cased for comments
	Endpoint     string
	ClassName    string
	FuncName     string
	PositiveBody string
	NegativeBody string
}

type bodyData struct {
	Path       string
	TestPath   string // path params replaced with a known ID
	MissPath   string // path params replaced with a non-existent ID
	Verb       string
	SampleJSON string
	PatchJSON  string
}

// Render returns the generated pytest source.
func Render(ctx context.Context, spec *raml.NormalizedSpec) (string, error) {
	_ = ctx
	if spec == nil {
		return "", fmt.Errorf("pytestemitter: nil spec")
	}

	data := templateData{Title: spec.Title}
	for _, endpoint := range spec.Endpoints {
		detail, ok := spec.EndpointDetails[endpoint]
		if !ok {
			continue
		}
		for _, verb := range testVerbs {
			md, ok := detail.Methods[verb]
			if !ok {
				continue
			}
			tc, err := buildCase(endpoint, verb, md)
			if err != nil {
				return "", err
			}
			data.Cases = append(data.Cases, tc)
		}
	}

	return emitter.RenderTemplate("pytest", suiteTemplate, data)
}

func buildCase(endpoint string, verb raml.HttpMethod, md raml.MethodDetail) (testCase, error) {
	resource := raml.ResourceName(endpoint)
	tc := testCase{
		Verb:      strings.ToUpper(string(verb)),
		Endpoint:  endpoint,
		ClassName: "Test" + capitalize(resource) + capitalize(string(verb)),
		FuncName:  raml.MethodName(verb, endpoint),
	}

	sample := raml.SampleData(endpoint, verb, md)
	sampleJSON, err := pyLiteral(sample)
	if err != nil {
		return tc, err
	}

	bd := bodyData{
		Path:       endpoint,
		TestPath:   substituteParams(endpoint, "123"),
		MissPath:   substituteParams(endpoint, "99999"),
		Verb:       string(verb),
		SampleJSON: sampleJSON,
	}

	hasParams := strings.Contains(endpoint, "{")

	var positive, negative string
	switch verb {
	case raml.GET:
		if hasParams {
			positive = getByIDTemplate
			negative = getNotFoundTemplate
		} else {
			positive = getCollectionTemplate
			negative = getBadQueryTemplate
		}
	case raml.POST:
		positive = postTemplate
		negative = validationTemplate
	case raml.PUT:
		positive = putTemplate
		negative = validationTemplate
	case raml.DELETE:
		positive = deleteTemplate
		negative = deleteNotFoundTemplate
	case raml.PATCH:
		bd.PatchJSON, err = pyLiteral(patchSubset(sample))
		if err != nil {
			return tc, err
		}
		positive = patchTemplate
		negative = validationTemplate
	}

	if tc.PositiveBody, err = emitter.RenderTemplate("pytest-positive", positive, bd); err != nil {
		return tc, err
	}
	if tc.NegativeBody, err = emitter.RenderTemplate("pytest-negative", negative, bd); err != nil {
		return tc, err
	}
	return tc, nil
}

// patchSubset picks one non-id field from the sample to exercise a partial
// update, matching the shape a PATCH request would carry.
func patchSubset(sample map[string]any) map[string]any {
	for _, name := range raml.SortedFieldNames(fieldsOf(sample)) {
		if name == "id" {
			continue
		}
		return map[string]any{name: sample[name]}
	}
	return map[string]any{"name": "Updated Name"}
}

func fieldsOf(sample map[string]any) map[string]string {
	out := make(map[string]string, len(sample))
	for k := range sample {
		out[k] = ""
	}
	return out
}

func substituteParams(path, id string) string {
	return raml.PathParamPattern().ReplaceAllString(path, id)
}

// pyLiteral renders a map as an indented literal that is valid in generated
// Python source. Keys are emitted in sorted order for stable output.
func pyLiteral(v map[string]any) (string, error) {
	b, err := json.MarshalIndent(v, "        ", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal sample data: %w", err)
	}
	return string(b), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
