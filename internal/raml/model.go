package raml

// Normalized model produced by Parse and consumed by the emitters.

type HttpMethod string

const (
	GET     HttpMethod = "get"
	POST    HttpMethod = "post"
	PUT     HttpMethod = "put"
	DELETE  HttpMethod = "delete"
	PATCH   HttpMethod = "patch"
	OPTIONS HttpMethod = "options"
	HEAD    HttpMethod = "head"
)

// Verbs lists the HTTP methods recognized under a resource node, in the
// order generators iterate them.
var Verbs = []HttpMethod{GET, POST, PUT, DELETE, PATCH, OPTIONS, HEAD}

// NormalizedSpec is the flattened, generator-ready representation of an API.
// Endpoints holds full resource paths in depth-first document order; every
// path appears exactly once and has an entry in EndpointDetails.
type NormalizedSpec struct {
	Title     string
	Version   string
	BaseURI   string
	Protocols []string
	MediaType []string

	Endpoints       []string
	EndpointDetails map[string]EndpointDetail
}

// EndpointDetail captures one resource: its verb table plus the reserved
// description/displayName metadata. DisplayName defaults to the path.
type EndpointDetail struct {
	Methods     map[HttpMethod]MethodDetail
	Description string
	DisplayName string
}

// MethodDetail is the normalized shape of a single verb under a resource.
// Body (keyed by media type) and Responses (keyed by status code) are
// copied verbatim from the document; generators interpret them.
type MethodDetail struct {
	Description     string
	QueryParameters map[string]any
	Headers         map[string]any
	Body            map[string]any
	Responses       map[string]any
}

func isVerb(key string) bool {
	for _, v := range Verbs {
		if string(v) == key {
			return true
		}
	}
	return false
}
