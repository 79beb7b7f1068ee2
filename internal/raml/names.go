package raml

import (
	"regexp"
	"strings"
)

// Identifier derivation shared by the emitters.

var pathParamRe = regexp.MustCompile(`\{([^}]+)\}`)

// PathParamPattern exposes the {param} matcher for callers that rewrite
// paths, such as the test emitter substituting concrete IDs.
func PathParamPattern() *regexp.Regexp { return pathParamRe }

// ResourceName converts an endpoint path into a snake_case identifier:
// "/users/{id}" becomes "users_by_id".
func ResourceName(path string) string {
	name := strings.Trim(path, "/")
	name = strings.ReplaceAll(name, "/", "_")
	return pathParamRe.ReplaceAllString(name, "by_$1")
}

// RootResource returns the first path segment with parameter markers and
// punctuation stripped; it names the backing model for a resource family.
func RootResource(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	segment, _, _ := strings.Cut(trimmed, "/")
	segment = pathParamRe.ReplaceAllString(segment, "")
	return nonIdentRe.ReplaceAllString(segment, "_")
}

var nonIdentRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// MethodName derives the generated function name for a verb on a path,
// e.g. GET /users -> get_users_list, POST /users -> create_users.
func MethodName(verb HttpMethod, path string) string {
	res := ResourceName(path)
	switch verb {
	case GET:
		if strings.Contains(path, "{") {
			return "get_" + res
		}
		return "get_" + res + "_list"
	case POST:
		return "create_" + res
	case PUT:
		return "update_" + res
	case DELETE:
		return "delete_" + res
	case PATCH:
		return "patch_" + res
	default:
		return string(verb) + "_" + res
	}
}

// PathParams returns the {param} names of a path in document order.
func PathParams(path string) []string {
	matches := pathParamRe.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		params = append(params, m[1])
	}
	return params
}

// ClassName turns a spec title into a CamelCase class prefix.
func ClassName(title string) string {
	var b strings.Builder
	for _, word := range strings.Fields(title) {
		word = nonIdentRe.ReplaceAllString(word, "")
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(strings.ToLower(word[1:]))
	}
	if b.Len() == 0 {
		return "API"
	}
	return b.String()
}

// ModelClassName singularizes and CamelCases a resource name:
// "users" -> "User", "order_items" -> "OrderItem".
func ModelClassName(resource string) string {
	resource = strings.TrimSuffix(resource, "s")
	var b strings.Builder
	for _, word := range strings.Split(resource, "_") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	if b.Len() == 0 {
		return "Resource"
	}
	return b.String()
}
