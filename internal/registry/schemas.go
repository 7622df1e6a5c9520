// Package registry holds the schema and operation definitions contributed during
// one generation run. Registries are write-once: entries are never removed or
// replaced, and a rejected registration leaves the registry untouched.
package registry

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/specerr"
)

// identity compares definitions structurally. Origin is bookkeeping and does
// not make two otherwise equal definitions different.
var identity = []cmp.Option{
	cmpopts.IgnoreFields(model.SchemaDef{}, "Origin"),
	cmpopts.EquateEmpty(),
}

// SameSchema reports whether two definitions describe the same schema.
func SameSchema(a, b model.SchemaDef) bool {
	return cmp.Equal(a, b, identity...)
}

// Schemas is the schema registry.
type Schemas struct {
	defs  map[model.SchemaID]model.SchemaDef
	order []model.SchemaID
}

func NewSchemas() *Schemas {
	return &Schemas{
		defs: make(map[model.SchemaID]model.SchemaDef),
	}
}

// Register adds def under def.ID. Registering an identical definition again is
// a no-op; registering a different one fails with a *specerr.DuplicateSchemaError
// and keeps the original.
func (r *Schemas) Register(def model.SchemaDef) error {
	if def.ID == "" {
		return errors.New("schema id is required")
	}

	existing, ok := r.defs[def.ID]
	if !ok {
		r.defs[def.ID] = def
		r.order = append(r.order, def.ID)
		return nil
	}

	if SameSchema(existing, def) {
		return nil
	}

	return &specerr.DuplicateSchemaError{
		ID:          def.ID,
		Existing:    existing,
		Conflicting: def,
		Differences: Differences(existing, def),
	}
}

// Resolve returns the definition registered under id.
func (r *Schemas) Resolve(id model.SchemaID) (model.SchemaDef, bool) {
	def, ok := r.defs[id]
	return def, ok
}

func (r *Schemas) Len() int {
	return len(r.order)
}

// All returns the definitions in registration order.
func (r *Schemas) All() []model.SchemaDef {
	out := make([]model.SchemaDef, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}
