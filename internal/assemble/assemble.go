// Package assemble runs the registration pass and the pipeline that turns the
// enabled providers into a validated Document.
//
// Providers describe themselves concurrently. Their contributions are then
// registered serially in provider order, so conflicts are detected in one
// place and the result does not depend on scheduling.
package assemble

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kolah/paydoc/internal/composer"
	"github.com/kolah/paydoc/internal/golang"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/registry"
	"github.com/kolah/paydoc/internal/selector"
	"github.com/kolah/paydoc/internal/specerr"
	"github.com/kolah/paydoc/internal/validator"
	"golang.org/x/sync/errgroup"
)

// Lint controls how unreachable schemas are reported.
type Lint string

const (
	LintIgnore Lint = "ignore"
	LintWarn   Lint = "warn"
	LintError  Lint = "error"
)

type Options struct {
	Version  model.APIVersion
	Features []selector.Feature
	OpenAPI  string
	Info     model.Info
	Servers  []model.Server
	// Unreachable defaults to LintWarn.
	Unreachable Lint
}

type Result struct {
	Document *model.Document
	Selected []string
	Skipped  []selector.Skipped
}

type Assembler struct {
	providers []selector.Provider
	log       *slog.Logger
}

func New(providers []selector.Provider, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Assembler{providers: providers, log: log}
}

// Assemble selects, describes, registers, composes and validates. Every error
// found during registration is returned together as a specerr.List.
func (a *Assembler) Assemble(ctx context.Context, opts Options) (*Result, error) {
	sel, err := selector.New(opts.Version, opts.Features)
	if err != nil {
		return nil, err
	}
	selected, skipped, err := sel.Select(a.providers)
	if err != nil {
		return nil, fmt.Errorf("selecting providers: %w", err)
	}

	res := &Result{Skipped: skipped}
	for _, s := range selected {
		res.Selected = append(res.Selected, s.Name)
		a.log.Debug("provider selected", "provider", s.Name, "version", opts.Version)
	}
	for _, s := range skipped {
		a.log.Debug("provider skipped", "provider", s.Name, "reason", s.Reason)
	}

	contributions, err := describe(ctx, selected)
	if err != nil {
		return nil, err
	}

	reg := newRegistration()
	for i, s := range selected {
		reg.add(s.Name, contributions[i])
	}
	if err := reg.errs.ErrorOrNil(); err != nil {
		a.log.Error("registration failed", "errors", len(reg.errs))
		return nil, err
	}
	a.log.Info("registered definitions",
		"version", opts.Version,
		"providers", len(selected),
		"schemas", reg.schemas.Len(),
		"operations", reg.paths.Len(),
	)

	doc, err := composer.New().Compose(composer.Input{
		OpenAPI:         opts.OpenAPI,
		Info:            opts.Info,
		Version:         opts.Version,
		Servers:         opts.Servers,
		Schemas:         reg.schemas,
		Paths:           reg.paths,
		Tags:            reg.tags,
		SecuritySchemes: reg.schemes,
	})
	if err != nil {
		a.log.Error("composition failed", "errors", len(specerr.Flatten(err)))
		return nil, err
	}

	if err := a.lintPruned(doc, reg.schemas, opts.Unreachable); err != nil {
		return nil, err
	}

	doc, err = validator.New().Validate(doc)
	if err != nil {
		a.log.Error("validation failed", "errors", len(specerr.Flatten(err)))
		return nil, err
	}
	a.log.Info("document composed",
		"version", doc.Version,
		"schemas", len(doc.Schemas),
		"operations", len(doc.Operations),
		"pruned", len(doc.Pruned),
	)

	res.Document = doc
	return res, nil
}

func describe(ctx context.Context, selected []selector.Selected) ([]selector.Contribution, error) {
	out := make([]selector.Contribution, len(selected))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.Describe()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Assembler) lintPruned(doc *model.Document, schemas *registry.Schemas, mode Lint) error {
	if len(doc.Pruned) == 0 || mode == LintIgnore {
		return nil
	}
	var errs specerr.List
	for _, id := range doc.Pruned {
		def, _ := schemas.Resolve(id)
		if mode == LintError {
			errs = append(errs, &specerr.UnreachableSchemaError{ID: id, Origin: def.Origin})
			continue
		}
		a.log.Warn("unreachable schema pruned", "schema", id, "provider", def.Origin)
	}
	return errs.ErrorOrNil()
}

// registration is the serial merge of contributions into the registries.
type registration struct {
	schemas *registry.Schemas
	paths   *registry.Paths
	tags    []model.Tag
	schemes []model.SecurityScheme
	owners  map[string]string
	errs    specerr.List
}

func newRegistration() *registration {
	return &registration{
		schemas: registry.NewSchemas(),
		paths:   registry.NewPaths(),
		owners:  make(map[string]string),
	}
}

func (r *registration) add(provider string, c selector.Contribution) {
	for _, def := range c.Schemas {
		if def.Origin == "" {
			def.Origin = provider
		}
		if err := r.schemas.Register(def); err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", provider, err))
		}
	}

	for _, op := range c.Operations {
		if op.Origin == "" {
			op.Origin = provider
		}
		if op.ID == "" {
			op.ID = golang.OperationID(string(op.Method), op.Path)
		}
		if err := r.paths.Register(op); err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", provider, err))
		}
	}

	r.tags = append(r.tags, c.Tags...)

	for _, s := range c.SecuritySchemes {
		owner, ok := r.owners[s.Name]
		if !ok {
			r.owners[s.Name] = provider
			r.schemes = append(r.schemes, s)
			continue
		}
		for _, existing := range r.schemes {
			if existing.Name == s.Name && existing != s {
				r.errs = append(r.errs, fmt.Errorf("%s: security scheme %q conflicts with the one declared by %s", provider, s.Name, owner))
			}
		}
	}
}
