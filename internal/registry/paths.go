package registry

import (
	"errors"
	"fmt"

	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/specerr"
)

// Paths is the operation registry.
type Paths struct {
	ops   []model.OperationDef
	byKey map[model.OperationKey]int
	byID  map[string]int
}

func NewPaths() *Paths {
	return &Paths{
		byKey: make(map[model.OperationKey]int),
		byID:  make(map[string]int),
	}
}

// Register adds op. It fails with a *specerr.DuplicateOperationError if the
// method and path, or the operation ID, are already taken.
func (r *Paths) Register(op model.OperationDef) error {
	if op.Path == "" || op.Path[0] != '/' {
		return fmt.Errorf("operation %s: path must start with '/'", op.Key())
	}
	if !op.Method.Valid() {
		return fmt.Errorf("operation %s: unsupported method", op.Key())
	}
	if op.ID == "" {
		return errors.New("operation id is required")
	}

	if i, ok := r.byKey[op.Key()]; ok {
		return &specerr.DuplicateOperationError{
			Key:               op.Key(),
			OperationID:       op.ID,
			ExistingOrigin:    r.ops[i].Origin,
			ConflictingOrigin: op.Origin,
		}
	}
	if i, ok := r.byID[op.ID]; ok {
		return &specerr.DuplicateOperationError{
			Key:               op.Key(),
			OperationID:       op.ID,
			ExistingOrigin:    r.ops[i].Origin,
			ConflictingOrigin: op.Origin,
			ByID:              true,
		}
	}

	r.byKey[op.Key()] = len(r.ops)
	r.byID[op.ID] = len(r.ops)
	r.ops = append(r.ops, op)
	return nil
}

// Lookup returns the operation registered under key.
func (r *Paths) Lookup(key model.OperationKey) (model.OperationDef, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return model.OperationDef{}, false
	}
	return r.ops[i], true
}

// List returns the operations in registration order.
func (r *Paths) List() []model.OperationDef {
	out := make([]model.OperationDef, len(r.ops))
	copy(out, r.ops)
	return out
}

func (r *Paths) Len() int {
	return len(r.ops)
}
