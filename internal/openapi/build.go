package openapi

import (
	"fmt"
	"strings"

	"github.com/kolah/paydoc/internal/model"
)

const (
	SchemaRefPrefix = "#/components/schemas/"
	ContentTypeJSON = "application/json"
)

// SchemaRef returns the $ref pointer for a component schema.
func SchemaRef(id model.SchemaID) string {
	return SchemaRefPrefix + string(id)
}

// Build converts a composed document into its OpenAPI representation.
func Build(doc *model.Document) (*Spec, error) {
	spec := &Spec{
		OpenAPI: doc.OpenAPI,
		Info: Info{
			Title:       doc.Info.Title,
			Description: doc.Info.Description,
			Version:     doc.Info.Version,
		},
		Paths: make(map[string]*PathItem),
	}

	for _, s := range doc.Servers {
		spec.Servers = append(spec.Servers, Server{URL: s.URL, Description: s.Description})
	}
	for _, t := range doc.Tags {
		spec.Tags = append(spec.Tags, Tag{Name: t.Name, Description: t.Description, DisplayName: t.DisplayName})
	}

	for _, op := range doc.Operations {
		item, ok := spec.Paths[op.Path]
		if !ok {
			item = &PathItem{}
			spec.Paths[op.Path] = item
		}
		if err := item.set(op.Method, buildOperation(op)); err != nil {
			return nil, fmt.Errorf("operation %s: %w", op.Key(), err)
		}
	}

	if len(doc.Schemas) > 0 {
		spec.Components.Schemas = make(map[string]*Schema, len(doc.Schemas))
		for _, def := range doc.Schemas {
			spec.Components.Schemas[string(def.ID)] = buildSchema(def)
		}
	}

	if len(doc.SecuritySchemes) > 0 {
		spec.Components.SecuritySchemes = make(map[string]*SecurityScheme, len(doc.SecuritySchemes))
		for _, s := range doc.SecuritySchemes {
			spec.Components.SecuritySchemes[s.Name] = buildSecurityScheme(s)
		}
	}

	return spec, nil
}

func (p *PathItem) set(m model.Method, op *Operation) error {
	var slot **Operation
	switch m {
	case model.MethodGet:
		slot = &p.Get
	case model.MethodPost:
		slot = &p.Post
	case model.MethodPut:
		slot = &p.Put
	case model.MethodDelete:
		slot = &p.Delete
	case model.MethodPatch:
		slot = &p.Patch
	case model.MethodHead:
		slot = &p.Head
	case model.MethodOptions:
		slot = &p.Options
	case model.MethodTrace:
		slot = &p.Trace
	default:
		return fmt.Errorf("unsupported method %q", m)
	}
	if *slot != nil {
		return fmt.Errorf("method %s already set", m)
	}
	*slot = op
	return nil
}

func buildOperation(op model.OperationDef) *Operation {
	out := &Operation{
		OperationID: op.ID,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Deprecated:  op.Deprecated,
		Responses:   make(map[string]*Response, len(op.Responses)),
	}

	for _, p := range op.Parameters {
		out.Parameters = append(out.Parameters, Parameter{
			Name:        p.Name,
			In:          string(p.In),
			Description: p.Description,
			Required:    p.Required,
			Schema:      typeSchema(p.Schema),
		})
	}

	if op.Request != nil {
		out.RequestBody = &RequestBody{
			Description: op.Request.Description,
			Required:    op.Request.Required,
			Content:     map[string]MediaType{ContentTypeJSON: {Schema: typeSchema(op.Request.Schema)}},
		}
	}

	for _, r := range op.Responses {
		resp := &Response{Description: r.Description}
		if resp.Description == "" {
			resp.Description = defaultDescription(r.StatusCode)
		}
		if r.Schema != nil && !r.Schema.IsZero() {
			resp.Content = map[string]MediaType{ContentTypeJSON: {Schema: typeSchema(*r.Schema)}}
		}
		out.Responses[r.StatusCode] = resp
	}

	for _, name := range op.Security {
		out.Security = append(out.Security, map[string][]string{name: {}})
	}

	return out
}

func defaultDescription(status string) string {
	switch {
	case status == "204":
		return "No Content"
	case strings.HasPrefix(status, "2"):
		return "Successful response"
	case strings.HasPrefix(status, "4"):
		return "Client error"
	case strings.HasPrefix(status, "5"):
		return "Server error"
	default:
		return "Response " + status
	}
}

func buildSchema(def model.SchemaDef) *Schema {
	s := &Schema{Description: def.Description, Example: def.Example}

	switch def.Kind {
	case model.KindObject:
		s.Type = string(model.TypeObject)
		s.Required = def.Required()
		if len(def.Fields) > 0 {
			s.Properties = make(map[string]*Schema, len(def.Fields))
		}
		for _, f := range def.Fields {
			s.Properties[f.Name] = fieldSchema(f)
		}
	case model.KindArray:
		s.Type = "array"
		if def.Items != nil {
			s.Items = typeSchema(*def.Items)
		}
	case model.KindEnum:
		s.Type = string(model.TypeString)
		if def.Type != "" {
			s.Type = string(def.Type)
		}
		s.Enum = def.Enum
	default:
		s.Type = string(def.Type)
		s.Format = def.Format
	}

	return s
}

// fieldSchema renders a property. A named reference cannot carry siblings in
// OpenAPI 3.0, so a described or nullable reference is wrapped in allOf.
func fieldSchema(f model.Field) *Schema {
	s := typeSchema(f.Type)
	if f.Description == "" && !f.Nullable {
		return s
	}
	if s.Ref != "" {
		s = &Schema{AllOf: []*Schema{s}}
	}
	s.Description = f.Description
	s.Nullable = f.Nullable
	return s
}

func typeSchema(t model.TypeRef) *Schema {
	switch {
	case t.Ref != "":
		return &Schema{Ref: SchemaRef(t.Ref)}
	case t.Items != nil:
		return &Schema{Type: "array", Items: typeSchema(*t.Items)}
	default:
		return &Schema{Type: string(t.Type), Format: t.Format}
	}
}

func buildSecurityScheme(s model.SecurityScheme) *SecurityScheme {
	out := &SecurityScheme{
		Type:        string(s.Type),
		Description: s.Description,
	}
	switch s.Type {
	case model.SecurityTypeAPIKey:
		out.Name = s.ParamName
		out.In = s.In
	case model.SecurityTypeHTTP:
		out.Scheme = s.ParamName
	}
	return out
}
