// Package decl is a small vocabulary for writing provider declarations.
//
// A Set collects one provider's schemas, operations, tags and security
// schemes for a single API version and stamps that version on every
// definition it holds.
package decl

import (
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

// ErrorSchema is the error envelope every provider's error responses refer to.
// The common provider registers it.
const ErrorSchema model.SchemaID = "ErrorResponse"

type Set struct {
	version model.APIVersion
	c       selector.Contribution
}

func NewSet(v model.APIVersion) *Set {
	return &Set{version: v}
}

func (s *Set) Version() model.APIVersion {
	return s.version
}

// Schema adds def stamped with the set's version.
func (s *Set) Schema(def model.SchemaDef) *Set {
	def.Version = s.version
	s.c.Schemas = append(s.c.Schemas, def)
	return s
}

func (s *Set) Object(id model.SchemaID, description string, fields ...model.Field) *Set {
	return s.Schema(model.SchemaDef{ID: id, Kind: model.KindObject, Description: description, Fields: fields})
}

func (s *Set) Enum(id model.SchemaID, description string, values ...string) *Set {
	return s.Schema(model.SchemaDef{ID: id, Kind: model.KindEnum, Type: model.TypeString, Description: description, Enum: values})
}

// Example attaches an example to the most recently added schema named id.
func (s *Set) Example(id model.SchemaID, value any) *Set {
	for i := len(s.c.Schemas) - 1; i >= 0; i-- {
		if s.c.Schemas[i].ID == id {
			s.c.Schemas[i].Example = value
			break
		}
	}
	return s
}

// Op adds op stamped with the set's version.
func (s *Set) Op(op model.OperationDef) *Set {
	op.Version = s.version
	s.c.Operations = append(s.c.Operations, op)
	return s
}

func (s *Set) Tag(name, description string) *Set {
	s.c.Tags = append(s.c.Tags, model.Tag{Name: name, Description: description})
	return s
}

func (s *Set) Security(scheme model.SecurityScheme) *Set {
	s.c.SecuritySchemes = append(s.c.SecuritySchemes, scheme)
	return s
}

func (s *Set) Contribution() selector.Contribution {
	return s.c
}

// Req declares a required field.
func Req(name string, t model.TypeRef, description string) model.Field {
	return model.Field{Name: name, Type: t, Description: description}
}

// Opt declares an optional field.
func Opt(name string, t model.TypeRef, description string) model.Field {
	return model.Field{Name: name, Type: t, Optional: true, Description: description}
}

// Null declares an optional field that may also be null.
func Null(name string, t model.TypeRef, description string) model.Field {
	return model.Field{Name: name, Type: t, Optional: true, Nullable: true, Description: description}
}

// Body declares a required JSON request body.
func Body(id model.SchemaID) *model.RequestBody {
	return &model.RequestBody{Required: true, Schema: model.Ref(id)}
}

// OK is a 200 response carrying id.
func OK(description string, id model.SchemaID) model.Response {
	ref := model.Ref(id)
	return model.Response{StatusCode: "200", Description: description, Schema: &ref}
}

// Responses returns success followed by the standard error responses.
func Responses(success ...model.Response) []model.Response {
	return append(success, Errors()...)
}

// Errors returns the error responses shared by every authenticated operation.
func Errors() []model.Response {
	ref := model.Ref(ErrorSchema)
	return []model.Response{
		{StatusCode: "400", Description: "Invalid request", Schema: &ref},
		{StatusCode: "401", Description: "Unauthorized request", Schema: &ref},
		{StatusCode: "404", Description: "Resource not found", Schema: &ref},
	}
}

// Query declares an optional query parameter.
func Query(name string, t model.TypeRef, description string) model.Parameter {
	return model.Parameter{Name: name, In: model.LocationQuery, Description: description, Schema: t}
}

// Header declares a header parameter.
func Header(name string, required bool, description string) model.Parameter {
	return model.Parameter{Name: name, In: model.LocationHeader, Required: required, Description: description, Schema: model.String}
}
