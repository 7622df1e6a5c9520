package model

// Document is the composed, single-version API description.
type Document struct {
	OpenAPI         string
	Info            Info
	Version         APIVersion
	Servers         []Server
	Schemas         []SchemaDef
	Operations      []OperationDef
	Tags            []Tag
	Groups          []TagGroup
	SecuritySchemes []SecurityScheme

	// Pruned lists registered schemas that no operation reaches. They are not emitted.
	Pruned []SchemaID
}

// Schema returns the schema with the given ID, or nil.
func (d *Document) Schema(id SchemaID) *SchemaDef {
	for i := range d.Schemas {
		if d.Schemas[i].ID == id {
			return &d.Schemas[i]
		}
	}
	return nil
}

// Operation returns the operation registered under key, or nil.
func (d *Document) Operation(key OperationKey) *OperationDef {
	for i := range d.Operations {
		if d.Operations[i].Key() == key {
			return &d.Operations[i]
		}
	}
	return nil
}

// SecurityScheme returns the scheme with the given name, or nil.
func (d *Document) SecurityScheme(name string) *SecurityScheme {
	for i := range d.SecuritySchemes {
		if d.SecuritySchemes[i].Name == name {
			return &d.SecuritySchemes[i]
		}
	}
	return nil
}

type Info struct {
	Title       string
	Description string
	Version     string
}

type Server struct {
	URL         string
	Description string
}

type Tag struct {
	Name        string
	DisplayName string
	Description string
}

// UntaggedGroup collects operations declared without tags.
const UntaggedGroup = "untagged"

// TagGroup is a navigation group: a tag and the operations filed under it.
type TagGroup struct {
	Name       string
	Operations []OperationKey
}
