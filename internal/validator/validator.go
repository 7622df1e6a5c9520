// Package validator is the last gate before a document is emitted.
//
// Checks run by class, in order: references, duplicate schemas, version
// homogeneity, operation completeness. The first class with findings stops
// validation, and every finding of that class is reported.
package validator

import (
	"fmt"
	"sort"

	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/registry"
	"github.com/kolah/paydoc/internal/specerr"
)

type check struct {
	name string
	run  func(doc *model.Document) specerr.List
}

type Validator struct {
	checks []check
}

func New() *Validator {
	return &Validator{
		checks: []check{
			{name: "references", run: checkReferences},
			{name: "duplicates", run: checkDuplicates},
			{name: "versions", run: checkVersions},
			{name: "completeness", run: checkCompleteness},
		},
	}
}

// Validate returns doc unchanged when it passes, otherwise a specerr.List with
// the findings of the first failing class.
func (v *Validator) Validate(doc *model.Document) (*model.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document to validate")
	}
	for _, c := range v.checks {
		if errs := c.run(doc); len(errs) > 0 {
			return nil, errs
		}
	}
	return doc, nil
}

func checkReferences(doc *model.Document) specerr.List {
	defined := make(map[model.SchemaID]bool, len(doc.Schemas))
	for _, s := range doc.Schemas {
		defined[s.ID] = true
	}

	missing := make(map[string][]string)
	var order []string
	note := func(ref, from string) {
		if _, ok := missing[ref]; !ok {
			order = append(order, ref)
		}
		missing[ref] = append(missing[ref], from)
	}

	for _, op := range doc.Operations {
		for _, lr := range op.TypeRefs() {
			for _, id := range lr.Ref.Refs() {
				if !defined[id] {
					note(string(id), op.Key().String()+" "+lr.Where)
				}
			}
		}
	}
	for _, s := range doc.Schemas {
		for _, f := range s.Fields {
			for _, id := range f.Type.Refs() {
				if !defined[id] {
					note(string(id), "schema "+string(s.ID)+" field "+f.Name)
				}
			}
		}
		if s.Items != nil {
			for _, id := range s.Items.Refs() {
				if !defined[id] {
					note(string(id), "schema "+string(s.ID)+" items")
				}
			}
		}
	}

	sort.Strings(order)
	var errs specerr.List
	for _, ref := range order {
		errs = append(errs, &specerr.UnresolvedReferenceError{Ref: ref, From: missing[ref]})
	}

	schemes := make(map[string]bool, len(doc.SecuritySchemes))
	for _, s := range doc.SecuritySchemes {
		schemes[s.Name] = true
	}
	unknown := make(map[string][]string)
	var names []string
	for _, op := range doc.Operations {
		for _, name := range op.Security {
			if schemes[name] {
				continue
			}
			if _, ok := unknown[name]; !ok {
				names = append(names, name)
			}
			unknown[name] = append(unknown[name], op.Key().String())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		errs = append(errs, &specerr.UnresolvedReferenceError{Ref: name, Security: true, From: unknown[name]})
	}

	return errs
}

func checkDuplicates(doc *model.Document) specerr.List {
	first := make(map[model.SchemaID]model.SchemaDef, len(doc.Schemas))
	var errs specerr.List
	for _, s := range doc.Schemas {
		existing, ok := first[s.ID]
		if !ok {
			first[s.ID] = s
			continue
		}
		if !registry.SameSchema(existing, s) {
			errs = append(errs, &specerr.DuplicateSchemaError{
				ID:          s.ID,
				Existing:    existing,
				Conflicting: s,
				Differences: registry.Differences(existing, s),
			})
		}
	}
	return errs
}

func checkVersions(doc *model.Document) specerr.List {
	var errs specerr.List
	for _, s := range doc.Schemas {
		if s.Version != doc.Version {
			errs = append(errs, &specerr.VersionMismatchError{
				Subject: fmt.Sprintf("schema %s (from %s)", s.ID, originOf(s.Origin)),
				Got:     s.Version,
				Want:    doc.Version,
			})
		}
	}
	for _, op := range doc.Operations {
		if op.Version != doc.Version {
			errs = append(errs, &specerr.VersionMismatchError{
				Subject: fmt.Sprintf("operation %s (from %s)", op.Key(), originOf(op.Origin)),
				Got:     op.Version,
				Want:    doc.Version,
			})
		}
	}
	return errs
}

func checkCompleteness(doc *model.Document) specerr.List {
	var errs specerr.List
	for _, op := range doc.Operations {
		if !hasSuccessResponse(op) {
			errs = append(errs, &specerr.IncompleteOperationError{
				Key:    op.Key(),
				Reason: "no 2xx response with a schema",
			})
		}

		declared := make(map[string]bool)
		for _, p := range op.Parameters {
			if p.In == model.LocationPath {
				declared[p.Name] = true
				if !p.Required {
					errs = append(errs, &specerr.IncompleteOperationError{
						Key:    op.Key(),
						Reason: fmt.Sprintf("path parameter %q must be required", p.Name),
					})
				}
			}
		}
		inTemplate := make(map[string]bool)
		for _, name := range model.PathTemplateParams(op.Path) {
			inTemplate[name] = true
			if !declared[name] {
				errs = append(errs, &specerr.IncompleteOperationError{
					Key:    op.Key(),
					Reason: fmt.Sprintf("path parameter %q is not declared", name),
				})
			}
		}
		for _, p := range op.Parameters {
			if p.In == model.LocationPath && !inTemplate[p.Name] {
				errs = append(errs, &specerr.IncompleteOperationError{
					Key:    op.Key(),
					Reason: fmt.Sprintf("path parameter %q does not appear in the path", p.Name),
				})
			}
		}

		seen := make(map[string]bool, len(op.Responses))
		for _, r := range op.Responses {
			if seen[r.StatusCode] {
				errs = append(errs, &specerr.IncompleteOperationError{
					Key:    op.Key(),
					Reason: fmt.Sprintf("response %s declared twice", r.StatusCode),
				})
			}
			seen[r.StatusCode] = true
		}
	}
	return errs
}

// hasSuccessResponse reports whether op declares a 2xx response carrying a
// schema. 204 No Content counts without one.
func hasSuccessResponse(op model.OperationDef) bool {
	for _, r := range op.Responses {
		if !r.IsSuccess() {
			continue
		}
		if r.StatusCode == "204" || (r.Schema != nil && !r.Schema.IsZero()) {
			return true
		}
	}
	return false
}

func originOf(s string) string {
	if s == "" {
		return "unknown provider"
	}
	return s
}
