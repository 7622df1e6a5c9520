package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/openapi"
	"github.com/kolah/paydoc/internal/specerr"
	validator "github.com/pb33f/libopenapi-validator"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentURL is the in-memory location the emitted document is registered
// under when compiling example schemas.
const documentURL = "mem:///openapi.json"

// Verifier runs every check against one emitted JSON document.
type Verifier struct {
	checks []check
}

type check struct {
	name string
	run  func(ctx context.Context, data []byte, doc *model.Document) error
}

func New() *Verifier {
	return &Verifier{
		checks: []check{
			{name: "round-trip", run: checkRoundTrip},
			{name: "structure", run: checkStructure},
			{name: "kin-openapi", run: checkKin},
			{name: "examples", run: checkExamples},
		},
	}
}

// Verify runs all checks and returns a specerr.List of
// *specerr.VerificationError, or nil.
func (v *Verifier) Verify(ctx context.Context, data []byte, doc *model.Document) error {
	var errs specerr.List
	for _, c := range v.checks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.run(ctx, data, doc); err != nil {
			for _, e := range specerr.Flatten(err) {
				errs = append(errs, &specerr.VerificationError{Check: c.name, Cause: e})
			}
		}
	}
	return errs.ErrorOrNil()
}

// checkRoundTrip parses the document with libopenapi and compares what it
// finds against the composed document.
func checkRoundTrip(_ context.Context, data []byte, doc *model.Document) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	if parsed.Version != doc.OpenAPI {
		return fmt.Errorf("openapi version %s, want %s", parsed.Version, doc.OpenAPI)
	}

	got := parsed.Counts()
	paths := make(map[string]bool)
	for _, op := range doc.Operations {
		paths[op.Path] = true
	}
	want := Counts{Paths: len(paths), Operations: len(doc.Operations), Schemas: len(doc.Schemas)}

	var errs specerr.List
	if got.Paths != want.Paths {
		errs = append(errs, fmt.Errorf("%d paths, want %d", got.Paths, want.Paths))
	}
	if got.Operations != want.Operations {
		errs = append(errs, fmt.Errorf("%d operations, want %d", got.Operations, want.Operations))
	}
	if got.Schemas != want.Schemas {
		errs = append(errs, fmt.Errorf("%d schemas, want %d", got.Schemas, want.Schemas))
	}
	return errs.ErrorOrNil()
}

// checkStructure validates the document against the OpenAPI schema.
func checkStructure(_ context.Context, data []byte, _ *model.Document) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	v, errs := validator.NewValidator(parsed.Document)
	if len(errs) > 0 {
		return specerr.List(errs)
	}
	if ok, findings := v.ValidateDocument(); !ok {
		var out specerr.List
		for _, f := range findings {
			msg := f.Message
			if f.Reason != "" {
				msg += ": " + f.Reason
			}
			out = append(out, fmt.Errorf("%s", msg))
		}
		if len(out) == 0 {
			out = append(out, fmt.Errorf("document failed OpenAPI schema validation"))
		}
		return out
	}
	return nil
}

// checkKin loads the document with kin-openapi and runs its validation,
// which resolves every $ref and checks schema examples.
func checkKin(ctx context.Context, data []byte, _ *model.Document) error {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// checkExamples validates every schema example against its emitted schema.
func checkExamples(_ context.Context, data []byte, doc *model.Document) error {
	var withExamples []model.SchemaDef
	for _, s := range doc.Schemas {
		if s.Example != nil {
			withExamples = append(withExamples, s)
		}
	}
	if len(withExamples) == 0 {
		return nil
	}

	root, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(documentURL, nullableAsNull(root)); err != nil {
		return fmt.Errorf("registering document: %w", err)
	}

	var errs specerr.List
	for _, s := range withExamples {
		if err := checkExample(c, s); err != nil {
			errs = append(errs, fmt.Errorf("schema %s example: %w", s.ID, err))
		}
	}
	return errs.ErrorOrNil()
}

func checkExample(c *jsonschema.Compiler, s model.SchemaDef) error {
	sch, err := c.Compile(documentURL + openapi.SchemaRef(s.ID))
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	raw, err := json.Marshal(s.Example)
	if err != nil {
		return fmt.Errorf("encoding example: %w", err)
	}
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decoding example: %w", err)
	}
	return sch.Validate(value)
}

// nullableAsNull rewrites the OpenAPI 3.0 nullable keyword, which JSON Schema
// does not know, into an explicit null alternative. A typed schema gains
// "null" in its type list; any other schema, such as an allOf-wrapped
// reference, becomes anyOf the original and {"type": "null"}.
func nullableAsNull(v any) any {
	switch v := v.(type) {
	case []any:
		for i := range v {
			v[i] = nullableAsNull(v[i])
		}
		return v
	case map[string]any:
		for k, child := range v {
			v[k] = nullableAsNull(child)
		}
		if nullable, _ := v["nullable"].(bool); !nullable {
			return v
		}
		delete(v, "nullable")
		if enum, ok := v["enum"].([]any); ok {
			v["enum"] = append(enum, nil)
		}
		if t, ok := v["type"].(string); ok {
			v["type"] = []any{t, "null"}
			return v
		}
		return map[string]any{
			"anyOf": []any{v, map[string]any{"type": "null"}},
		}
	default:
		return v
	}
}
