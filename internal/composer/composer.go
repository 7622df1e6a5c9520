// Package composer merges the schema and path registries into one Document.
//
// The document embeds exactly the schemas reachable from registered
// operations: request bodies, responses and parameters are the roots, and the
// closure follows field and item references. A reference that does not
// resolve fails composition. Registered schemas nobody reaches are pruned and
// listed in Document.Pruned.
package composer

import (
	"sort"
	"strings"

	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/registry"
	"github.com/kolah/paydoc/internal/specerr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Input is everything the composer needs for one run.
type Input struct {
	OpenAPI         string
	Info            model.Info
	Version         model.APIVersion
	Servers         []model.Server
	Schemas         *registry.Schemas
	Paths           *registry.Paths
	Tags            []model.Tag
	SecuritySchemes []model.SecurityScheme
}

type Composer struct {
	title cases.Caser
}

func New() *Composer {
	return &Composer{
		title: cases.Title(language.English),
	}
}

// Compose builds the document. On unresolved references it returns a
// specerr.List of *specerr.UnresolvedReferenceError and no document.
func (c *Composer) Compose(in Input) (*model.Document, error) {
	ops := in.Paths.List()

	reachable, err := closure(in.Schemas, ops)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		OpenAPI:         in.OpenAPI,
		Info:            in.Info,
		Version:         in.Version,
		Servers:         in.Servers,
		SecuritySchemes: sortedSchemes(in.SecuritySchemes),
	}
	if doc.Info.Version == "" {
		doc.Info.Version = string(in.Version)
	}

	for _, def := range in.Schemas.All() {
		if reachable[def.ID] {
			doc.Schemas = append(doc.Schemas, def)
		} else {
			doc.Pruned = append(doc.Pruned, def.ID)
		}
	}
	sort.Slice(doc.Schemas, func(i, j int) bool { return doc.Schemas[i].ID < doc.Schemas[j].ID })
	sort.Slice(doc.Pruned, func(i, j int) bool { return doc.Pruned[i] < doc.Pruned[j] })

	SortOperations(ops)
	doc.Operations = ops
	doc.Groups = Group(ops)
	doc.Tags = c.tags(doc.Groups, in.Tags)

	return doc, nil
}

// closure walks from every operation's TypeRefs through schema fields and items
// and returns the set of reachable schema IDs.
func closure(schemas *registry.Schemas, ops []model.OperationDef) (map[model.SchemaID]bool, error) {
	reachable := make(map[model.SchemaID]bool)
	unresolved := make(map[model.SchemaID][]string)
	var queue []model.SchemaDef

	visit := func(id model.SchemaID, from string) {
		if reachable[id] {
			return
		}
		def, ok := schemas.Resolve(id)
		if !ok {
			if !contains(unresolved[id], from) {
				unresolved[id] = append(unresolved[id], from)
			}
			return
		}
		reachable[id] = true
		queue = append(queue, def)
	}

	for _, op := range ops {
		for _, lr := range op.TypeRefs() {
			for _, id := range lr.Ref.Refs() {
				visit(id, op.Key().String()+" "+lr.Where)
			}
		}
	}

	for len(queue) > 0 {
		def := queue[0]
		queue = queue[1:]
		for _, f := range def.Fields {
			for _, id := range f.Type.Refs() {
				visit(id, "schema "+string(def.ID)+" field "+f.Name)
			}
		}
		if def.Items != nil {
			for _, id := range def.Items.Refs() {
				visit(id, "schema "+string(def.ID)+" items")
			}
		}
	}

	if len(unresolved) > 0 {
		ids := make([]model.SchemaID, 0, len(unresolved))
		for id := range unresolved {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		errs := make(specerr.List, 0, len(ids))
		for _, id := range ids {
			errs = append(errs, &specerr.UnresolvedReferenceError{Ref: string(id), From: unresolved[id]})
		}
		return nil, errs
	}

	return reachable, nil
}

// SortOperations orders operations by path, then by method display order.
func SortOperations(ops []model.OperationDef) {
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method.Rank() < ops[j].Method.Rank()
	})
}

// Group files sorted operations under each of their tags. Tag groups are in
// alphabetical order; operations without tags form a trailing untagged group.
func Group(ops []model.OperationDef) []model.TagGroup {
	byTag := make(map[string][]model.OperationKey)
	var untagged []model.OperationKey

	for _, op := range ops {
		if len(op.Tags) == 0 {
			untagged = append(untagged, op.Key())
			continue
		}
		seen := make(map[string]bool, len(op.Tags))
		for _, tag := range op.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			byTag[tag] = append(byTag[tag], op.Key())
		}
	}

	names := make([]string, 0, len(byTag))
	for name := range byTag {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]model.TagGroup, 0, len(names)+1)
	for _, name := range names {
		groups = append(groups, model.TagGroup{Name: name, Operations: byTag[name]})
	}
	if len(untagged) > 0 {
		groups = append(groups, model.TagGroup{Name: model.UntaggedGroup, Operations: untagged})
	}
	return groups
}

// tags returns metadata for every tag that has operations, in group order.
// Declared metadata wins; undeclared tags get a title-cased display name.
func (c *Composer) tags(groups []model.TagGroup, declared []model.Tag) []model.Tag {
	meta := make(map[string]model.Tag, len(declared))
	for _, t := range declared {
		existing, ok := meta[t.Name]
		if !ok {
			meta[t.Name] = t
			continue
		}
		if existing.Description == "" {
			existing.Description = t.Description
		}
		if existing.DisplayName == "" {
			existing.DisplayName = t.DisplayName
		}
		meta[t.Name] = existing
	}

	var out []model.Tag
	for _, g := range groups {
		if g.Name == model.UntaggedGroup {
			continue
		}
		t, ok := meta[g.Name]
		if !ok {
			t = model.Tag{Name: g.Name}
		}
		if t.DisplayName == "" {
			t.DisplayName = c.DisplayName(g.Name)
		}
		out = append(out, t)
	}
	return out
}

// DisplayName turns a tag name like "payment-methods" into "Payment Methods".
func (c *Composer) DisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	return c.title.String(strings.Join(words, " "))
}

func sortedSchemes(in []model.SecurityScheme) []model.SecurityScheme {
	out := make([]model.SecurityScheme, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
