package model

import (
	"fmt"
	"strings"
)

// SchemaID names a schema within one API version.
type SchemaID string

type SchemaKind string

const (
	KindObject    SchemaKind = "object"
	KindArray     SchemaKind = "array"
	KindEnum      SchemaKind = "enum"
	KindPrimitive SchemaKind = "primitive"
)

type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeObject  SchemaType = "object"
)

// SchemaDef is a named schema declared by a domain provider.
type SchemaDef struct {
	ID          SchemaID
	Version     APIVersion
	Kind        SchemaKind
	Description string

	// Object fields
	Fields []Field

	// Array items
	Items *TypeRef

	// Enum values; Type holds the base type (string when empty)
	Enum []string

	// Primitive type
	Type   SchemaType
	Format string

	// Example is a JSON-compatible value checked against the emitted schema.
	Example any

	// Origin is the provider that registered the definition. It is not part of
	// the schema's identity.
	Origin string
}

// Field is a property of an object schema.
type Field struct {
	Name        string
	Type        TypeRef
	Optional    bool
	Nullable    bool
	Description string
}

// TypeRef points at a type: an inline primitive, an inline array, or a named schema.
type TypeRef struct {
	Ref    SchemaID
	Type   SchemaType
	Format string
	Items  *TypeRef
}

// Ref returns a named reference to a schema.
func Ref(id SchemaID) TypeRef {
	return TypeRef{Ref: id}
}

// Prim returns an inline primitive type.
func Prim(t SchemaType, format string) TypeRef {
	return TypeRef{Type: t, Format: format}
}

// ArrayOf returns an inline array of items.
func ArrayOf(items TypeRef) TypeRef {
	return TypeRef{Items: &items}
}

var (
	String   = Prim(TypeString, "")
	Integer  = Prim(TypeInteger, "int64")
	Boolean  = Prim(TypeBoolean, "")
	DateTime = Prim(TypeString, "date-time")
)

func (t TypeRef) IsNamed() bool {
	return t.Ref != ""
}

func (t TypeRef) IsArray() bool {
	return t.Items != nil
}

func (t TypeRef) IsZero() bool {
	return t.Ref == "" && t.Type == "" && t.Items == nil
}

// Refs returns the schema IDs named by t, including through array items.
func (t TypeRef) Refs() []SchemaID {
	switch {
	case t.Ref != "":
		return []SchemaID{t.Ref}
	case t.Items != nil:
		return t.Items.Refs()
	default:
		return nil
	}
}

func (t TypeRef) String() string {
	switch {
	case t.Ref != "":
		return string(t.Ref)
	case t.Items != nil:
		return "[]" + t.Items.String()
	case t.Format != "":
		return string(t.Type) + "(" + t.Format + ")"
	default:
		return string(t.Type)
	}
}

// Refs returns every schema ID referenced directly by the definition, in field order.
func (s SchemaDef) Refs() []SchemaID {
	var refs []SchemaID
	for _, f := range s.Fields {
		refs = append(refs, f.Type.Refs()...)
	}
	if s.Items != nil {
		refs = append(refs, s.Items.Refs()...)
	}
	return refs
}

// Required returns the names of non-optional fields in declaration order.
func (s SchemaDef) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if !f.Optional {
			names = append(names, f.Name)
		}
	}
	return names
}

// Shape renders a compact one-line structural summary, used in diagnostics.
func (s SchemaDef) Shape() string {
	switch s.Kind {
	case KindObject:
		parts := make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			name := f.Name
			if f.Optional {
				name += "?"
			}
			parts = append(parts, name+": "+f.Type.String())
		}
		return "object{" + strings.Join(parts, ", ") + "}"
	case KindArray:
		if s.Items == nil {
			return "array"
		}
		return "array[" + s.Items.String() + "]"
	case KindEnum:
		return "enum(" + strings.Join(s.Enum, "|") + ")"
	default:
		if s.Format != "" {
			return fmt.Sprintf("%s(%s)", s.Type, s.Format)
		}
		return string(s.Type)
	}
}

type SecurityScheme struct {
	Name        string
	Type        SecuritySchemeType
	Description string
	In          string
	ParamName   string
}

type SecuritySchemeType string

const (
	SecurityTypeAPIKey SecuritySchemeType = "apiKey"
	SecurityTypeHTTP   SecuritySchemeType = "http"
)
