// Package verify re-reads an emitted document with independent OpenAPI
// tooling and checks that nothing was lost on the way out.
package verify

import (
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// Parsed is an emitted document as libopenapi sees it.
type Parsed struct {
	Document libopenapi.Document
	Model    *libopenapi.DocumentModel[v3.Document]
	Version  string
}

// Parse loads data with libopenapi and builds the v3 model.
func Parse(data []byte) (*Parsed, error) {
	doc, err := libopenapi.NewDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	version := doc.GetVersion()
	if !strings.HasPrefix(version, "3.") {
		return nil, fmt.Errorf("unsupported OpenAPI version: %s (only 3.x supported)", version)
	}

	model, err := doc.BuildV3Model()
	if err != nil {
		return nil, fmt.Errorf("building OpenAPI model: %w", err)
	}

	return &Parsed{
		Document: doc,
		Model:    model,
		Version:  version,
	}, nil
}

// Counts tallies what a parsed document contains.
type Counts struct {
	Paths      int
	Operations int
	Schemas    int
}

func (p *Parsed) Counts() Counts {
	var c Counts
	m := p.Model.Model

	if m.Components != nil && m.Components.Schemas != nil {
		c.Schemas = m.Components.Schemas.Len()
	}
	if m.Paths == nil || m.Paths.PathItems == nil {
		return c
	}
	for _, item := range m.Paths.PathItems.FromOldest() {
		c.Paths++
		for _, op := range []*v3.Operation{
			item.Get, item.Post, item.Put, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if op != nil {
				c.Operations++
			}
		}
	}
	return c
}
