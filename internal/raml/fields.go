package raml

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// Field type inference used by the emitters to shape generated models and
// sample payloads. Types are reported with canonical JSON-schema names:
// string, integer, number, boolean, array, object.

// InferFields derives a field-to-type mapping from a method's JSON body.
// It prefers declared schema properties, falls back to a literal example
// (JSON-decoding it first when given as a string), and returns nil when
// neither yields fields.
func InferFields(md MethodDetail) map[string]string {
	jsonBody, ok := md.Body["application/json"].(map[string]any)
	if !ok {
		return nil
	}

	if schema, ok := jsonBody["schema"].(map[string]any); ok {
		if props, ok := schema["properties"].(map[string]any); ok && len(props) > 0 {
			fields := make(map[string]string, len(props))
			for name, def := range props {
				fieldType := "string"
				if dm, ok := def.(map[string]any); ok {
					if t, ok := dm["type"].(string); ok && t != "" {
						fieldType = canonicalType(t)
					}
				}
				fields[name] = fieldType
			}
			return fields
		}
	}

	switch example := jsonBody["example"].(type) {
	case string:
		var decoded any
		if err := json.Unmarshal([]byte(example), &decoded); err != nil {
			return nil
		}
		if m, ok := decoded.(map[string]any); ok {
			return fieldsFromValue(m)
		}
	case map[string]any:
		return fieldsFromValue(example)
	}
	return nil
}

// SampleData builds an example request payload for a method: the literal
// JSON example when one exists, otherwise a synthetic payload named after
// the resource.
func SampleData(path string, verb HttpMethod, md MethodDetail) map[string]any {
	if jsonBody, ok := md.Body["application/json"].(map[string]any); ok {
		switch example := jsonBody["example"].(type) {
		case string:
			var decoded map[string]any
			if err := json.Unmarshal([]byte(example), &decoded); err == nil {
				return decoded
			}
			return map[string]any{"example": example}
		case map[string]any:
			return example
		}
	}

	resource := strings.TrimSuffix(strings.ReplaceAll(ResourceName(path), "_", " "), "s")
	sample := map[string]any{
		"name":        "Test " + resource,
		"description": "This is a test " + resource,
	}
	switch verb {
	case PUT, PATCH, DELETE:
		sample["id"] = 123
	}
	return sample
}

func fieldsFromValue(m map[string]any) map[string]string {
	fields := make(map[string]string, len(m))
	for name, value := range m {
		fields[name] = typeName(value)
	}
	return fields
}

func typeName(v any) string {
	switch v := v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		if v == math.Trunc(v) {
			return "integer"
		}
		return "number"
	case int, int64, uint64:
		return "integer"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "string"
	}
}

func canonicalType(t string) string {
	switch strings.ToLower(t) {
	case "string", "str", "text":
		return "string"
	case "integer", "int":
		return "integer"
	case "number", "float", "double":
		return "number"
	case "boolean", "bool":
		return "boolean"
	case "array", "list":
		return "array"
	case "object", "dict":
		return "object"
	}
	return "string"
}

// SortedFieldNames returns the inferred field names in stable order so
// generated code does not churn between runs.
func SortedFieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
