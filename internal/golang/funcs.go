package golang

import "text/template"

// TemplateFuncs returns the functions available to the embedded templates and
// to templates overriding them from templates.dir.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"goName": ToGoIdentifier,
	}
}
