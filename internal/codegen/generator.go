package codegen

import (
	"context"
	"fmt"

	"github.com/kolah/paydoc/internal/config"
	"github.com/kolah/paydoc/internal/golang"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/openapi"
	spectarget "github.com/kolah/paydoc/internal/targets/spec"
	"github.com/kolah/paydoc/internal/templates"
	"github.com/kolah/paydoc/internal/verify"
	embeddedtmpl "github.com/kolah/paydoc/templates"
)

type Generator struct {
	config   *config.Config
	engine   templates.Engine
	verifier *verify.Verifier
}

type Output struct {
	Filename string
	Content  string
}

func New(cfg *config.Config) (*Generator, error) {
	if len(cfg.Output.Initialisms) > 0 {
		golang.SetAdditionalInitialisms(cfg.Output.Initialisms)
	}

	engine, err := templates.NewEngine(embeddedtmpl.FS, cfg.Templates.Dir, golang.TemplateFuncs())
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}

	return &Generator{
		config:   cfg,
		engine:   engine,
		verifier: verify.New(),
	}, nil
}

// Generate emits doc in the configured format. The JSON rendering is verified
// before any output is produced, whatever the format.
func (g *Generator) Generate(ctx context.Context, doc *model.Document) (Output, error) {
	spec, err := openapi.Build(doc)
	if err != nil {
		return Output{}, fmt.Errorf("building document: %w", err)
	}
	specData, err := spec.EncodeJSON()
	if err != nil {
		return Output{}, fmt.Errorf("encoding document: %w", err)
	}
	if err := g.verifier.Verify(ctx, specData, doc); err != nil {
		return Output{}, err
	}

	out := Output{Filename: g.config.Filename()}
	switch g.config.Output.Format {
	case config.FormatJSON:
		out.Content = string(specData)
	case config.FormatYAML:
		data, err := spec.EncodeYAML()
		if err != nil {
			return Output{}, fmt.Errorf("encoding yaml: %w", err)
		}
		out.Content = string(data)
	case config.FormatGo:
		target := spectarget.New()
		content, err := target.Generate(g.engine, doc, specData, config.FormatJSON, g.config.Output.Package)
		if err != nil {
			return Output{}, fmt.Errorf("generating spec: %w", err)
		}
		formatted, err := golang.Format([]byte(content))
		if err != nil {
			return Output{}, fmt.Errorf("formatting spec: %w", err)
		}
		out.Content = string(formatted)
	default:
		return Output{}, fmt.Errorf("unsupported output format %q", g.config.Output.Format)
	}

	return out, nil
}
