// Package spec renders a Go source file that embeds an emitted document.
package spec

import (
	"encoding/base64"
	"fmt"

	"github.com/kolah/paydoc/internal/golang"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/templates"
)

const templateName = "go/spec.tmpl"

type Target struct{}

func New() *Target {
	return &Target{}
}

type operation struct {
	ID     string
	Method model.Method
	Path   string
}

type templateData struct {
	Package    string
	Version    model.APIVersion
	Format     string
	SpecData   string
	Operations []operation
}

// Generate renders the Go file for doc. specData is the serialized document
// in format, which is recorded in the generated doc comment. Operation IDs
// that map to the same Go constant name are rejected.
func (t *Target) Generate(engine templates.Engine, doc *model.Document, specData []byte, format, pkg string) (string, error) {
	if pkg == "" {
		return "", fmt.Errorf("package name is required")
	}
	data := templateData{
		Package:  pkg,
		Version:  doc.Version,
		Format:   format,
		SpecData: base64.StdEncoding.EncodeToString(specData),
	}
	consts := make(map[string]string, len(doc.Operations))
	for _, op := range doc.Operations {
		name := "Operation" + golang.ToGoIdentifier(op.ID)
		if prev, ok := consts[name]; ok {
			return "", fmt.Errorf("operation ids %q and %q both map to constant %s", prev, op.ID, name)
		}
		consts[name] = op.ID
		data.Operations = append(data.Operations, operation{ID: op.ID, Method: op.Method, Path: op.Path})
	}

	return engine.Execute(templateName, data)
}
