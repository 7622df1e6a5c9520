package model

import (
	"regexp"
	"strings"
)

// OperationDef describes one route of the API surface.
type OperationDef struct {
	ID          string
	Method      Method
	Path        string
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	Request     *RequestBody
	Responses   []Response
	Security    []string
	Deprecated  bool
	Version     APIVersion
	Origin      string
}

// OperationKey identifies an operation by method and path template.
type OperationKey struct {
	Method Method
	Path   string
}

func (k OperationKey) String() string {
	return string(k.Method) + " " + k.Path
}

func (o OperationDef) Key() OperationKey {
	return OperationKey{Method: o.Method, Path: o.Path}
}

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

var methodRank = map[Method]int{
	MethodGet:     0,
	MethodPost:    1,
	MethodPut:     2,
	MethodDelete:  3,
	MethodPatch:   4,
	MethodHead:    5,
	MethodOptions: 6,
	MethodTrace:   7,
}

// Rank orders methods for display: GET, POST, PUT, DELETE, PATCH, then the rest.
// Unknown methods sort last.
func (m Method) Rank() int {
	if r, ok := methodRank[m]; ok {
		return r
	}
	return len(methodRank)
}

func (m Method) Valid() bool {
	_, ok := methodRank[m]
	return ok
}

type ParameterLocation string

const (
	LocationPath   ParameterLocation = "path"
	LocationQuery  ParameterLocation = "query"
	LocationHeader ParameterLocation = "header"
	LocationCookie ParameterLocation = "cookie"
)

type Parameter struct {
	Name        string
	In          ParameterLocation
	Description string
	Required    bool
	Schema      TypeRef
}

// PathParam declares a required path parameter of type string.
func PathParam(name, description string) Parameter {
	return Parameter{Name: name, In: LocationPath, Description: description, Required: true, Schema: String}
}

type RequestBody struct {
	Description string
	Required    bool
	Schema      TypeRef
}

type Response struct {
	StatusCode  string
	Description string
	Schema      *TypeRef
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r Response) IsSuccess() bool {
	return len(r.StatusCode) == 3 && r.StatusCode[0] == '2'
}

// TypeRefs returns every TypeRef an operation uses, labelled by where it appears.
func (o OperationDef) TypeRefs() []LabeledRef {
	var refs []LabeledRef
	for _, p := range o.Parameters {
		refs = append(refs, LabeledRef{Where: "parameter " + p.Name, Ref: p.Schema})
	}
	if o.Request != nil {
		refs = append(refs, LabeledRef{Where: "request body", Ref: o.Request.Schema})
	}
	for _, r := range o.Responses {
		if r.Schema != nil {
			refs = append(refs, LabeledRef{Where: "response " + r.StatusCode, Ref: *r.Schema})
		}
	}
	return refs
}

// LabeledRef is a TypeRef together with a description of its position.
type LabeledRef struct {
	Where string
	Ref   TypeRef
}

var templateParam = regexp.MustCompile(`\{([^{}]+)\}`)

// PathTemplateParams returns the names of {param} segments in a path template.
func PathTemplateParams(path string) []string {
	var names []string
	for _, m := range templateParam.FindAllStringSubmatch(path, -1) {
		names = append(names, strings.TrimSpace(m[1]))
	}
	return names
}
