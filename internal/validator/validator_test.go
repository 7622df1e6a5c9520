package validator

import (
	"errors"
	"testing"

	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/specerr"
	"github.com/stretchr/testify/require"
)

func refundDoc() *model.Document {
	refund := model.Ref("Refund")
	return &model.Document{
		OpenAPI: "3.0.3",
		Info:    model.Info{Title: "Payments API", Version: "v1"},
		Version: model.V1,
		Schemas: []model.SchemaDef{
			{ID: "Refund", Version: model.V1, Kind: model.KindObject, Origin: "refunds", Fields: []model.Field{
				{Name: "id", Type: model.String},
				{Name: "amount", Type: model.Prim(model.TypeInteger, "")},
			}},
		},
		Operations: []model.OperationDef{{
			ID: "getRefund", Method: model.MethodGet, Path: "/refunds/{id}", Version: model.V1, Origin: "refunds",
			Parameters: []model.Parameter{model.PathParam("id", "Refund id")},
			Responses:  []model.Response{{StatusCode: "200", Description: "Refund", Schema: &refund}},
			Security:   []string{"api_key"},
		}},
		SecuritySchemes: []model.SecurityScheme{{Name: "api_key", Type: model.SecurityTypeAPIKey, In: "header", ParamName: "api-key"}},
	}
}

func TestValidatePasses(t *testing.T) {
	doc := refundDoc()
	got, err := New().Validate(doc)
	require.NoError(t, err)
	require.Same(t, doc, got)
}

func TestValidateNil(t *testing.T) {
	_, err := New().Validate(nil)
	require.Error(t, err)
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(d *model.Document)
		sentinel error
		count    int
		contains string
	}{
		{
			name: "unresolved response ref",
			mutate: func(d *model.Document) {
				r := model.Ref("RefundX")
				d.Operations[0].Responses[0].Schema = &r
			},
			sentinel: specerr.ErrUnresolvedReference,
			count:    1,
			contains: `"RefundX"`,
		},
		{
			name: "unresolved field refs are all collected",
			mutate: func(d *model.Document) {
				d.Schemas[0].Fields = append(d.Schemas[0].Fields,
					model.Field{Name: "currency", Type: model.Ref("Currency")},
					model.Field{Name: "events", Type: model.ArrayOf(model.Ref("RefundEvent"))},
				)
			},
			sentinel: specerr.ErrUnresolvedReference,
			count:    2,
			contains: "schema Refund field currency",
		},
		{
			name:     "unresolved security scheme",
			mutate:   func(d *model.Document) { d.Operations[0].Security = []string{"jwt"} },
			sentinel: specerr.ErrUnresolvedReference,
			count:    1,
			contains: `unresolved security scheme "jwt"`,
		},
		{
			name: "divergent duplicate schema",
			mutate: func(d *model.Document) {
				dup := d.Schemas[0]
				dup.Fields = []model.Field{{Name: "id", Type: model.String}}
				dup.Origin = "payments"
				d.Schemas = append(d.Schemas, dup)
			},
			sentinel: specerr.ErrDuplicateSchema,
			count:    1,
			contains: "fields.amount: missing on conflicting definition",
		},
		{
			name: "version mismatch",
			mutate: func(d *model.Document) {
				d.Schemas[0].Version = model.V2
				d.Operations[0].Version = model.V2
			},
			sentinel: specerr.ErrVersionMismatch,
			count:    2,
			contains: "schema Refund (from refunds) is v2, document is v1",
		},
		{
			name: "untagged definition",
			mutate: func(d *model.Document) {
				d.Operations[0].Version = ""
			},
			sentinel: specerr.ErrVersionMismatch,
			count:    1,
			contains: "is untagged",
		},
		{
			name: "no success response",
			mutate: func(d *model.Document) {
				d.Operations[0].Responses = []model.Response{{StatusCode: "404", Description: "Not found"}}
			},
			sentinel: specerr.ErrIncompleteOperation,
			count:    1,
			contains: "no 2xx response with a schema",
		},
		{
			name: "success response without schema",
			mutate: func(d *model.Document) {
				d.Operations[0].Responses = []model.Response{{StatusCode: "200", Description: "OK"}}
			},
			sentinel: specerr.ErrIncompleteOperation,
			count:    1,
		},
		{
			name:     "undeclared path parameter",
			mutate:   func(d *model.Document) { d.Operations[0].Parameters = nil },
			sentinel: specerr.ErrIncompleteOperation,
			count:    1,
			contains: `path parameter "id" is not declared`,
		},
		{
			name: "optional and stray path parameters",
			mutate: func(d *model.Document) {
				d.Operations[0].Parameters = []model.Parameter{
					{Name: "id", In: model.LocationPath, Schema: model.String},
					model.PathParam("payment_id", ""),
				}
			},
			sentinel: specerr.ErrIncompleteOperation,
			count:    2,
			contains: `path parameter "payment_id" does not appear in the path`,
		},
		{
			name: "duplicate status code",
			mutate: func(d *model.Document) {
				d.Operations[0].Responses = append(d.Operations[0].Responses, d.Operations[0].Responses[0])
			},
			sentinel: specerr.ErrIncompleteOperation,
			count:    1,
			contains: "response 200 declared twice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := refundDoc()
			tt.mutate(doc)

			got, err := New().Validate(doc)
			require.Nil(t, got)
			require.ErrorIs(t, err, tt.sentinel)
			require.Len(t, specerr.Flatten(err), tt.count)
			if tt.contains != "" {
				require.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestValidateStopsAtFirstFailingClass(t *testing.T) {
	doc := refundDoc()
	r := model.Ref("RefundX")
	doc.Operations[0].Responses[0].Schema = &r
	doc.Schemas[0].Version = model.V2
	doc.Operations[0].Responses = append(doc.Operations[0].Responses, model.Response{StatusCode: "404"})

	_, err := New().Validate(doc)
	require.ErrorIs(t, err, specerr.ErrUnresolvedReference)
	require.False(t, errors.Is(err, specerr.ErrVersionMismatch))
}

func TestNoContentCountsAsSuccess(t *testing.T) {
	doc := refundDoc()
	doc.Operations[0].Responses = []model.Response{{StatusCode: "204", Description: "Deleted"}}
	_, err := New().Validate(doc)
	require.NoError(t, err)
}
