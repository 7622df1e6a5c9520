package composer

import (
	"errors"
	"testing"

	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/registry"
	"github.com/kolah/paydoc/internal/specerr"
	"github.com/stretchr/testify/require"
)

func ref(id model.SchemaID) *model.TypeRef {
	r := model.Ref(id)
	return &r
}

func newInput(t *testing.T, schemas []model.SchemaDef, ops []model.OperationDef) Input {
	t.Helper()
	s := registry.NewSchemas()
	for _, def := range schemas {
		require.NoError(t, s.Register(def))
	}
	p := registry.NewPaths()
	for _, op := range ops {
		require.NoError(t, p.Register(op))
	}
	return Input{
		OpenAPI: "3.0.3",
		Info:    model.Info{Title: "Payments API"},
		Version: model.V1,
		Schemas: s,
		Paths:   p,
	}
}

func TestComposeClosure(t *testing.T) {
	schemas := []model.SchemaDef{
		{ID: "Refund", Version: model.V1, Kind: model.KindObject, Fields: []model.Field{
			{Name: "id", Type: model.String},
			{Name: "status", Type: model.Ref("RefundStatus")},
			{Name: "history", Type: model.ArrayOf(model.Ref("RefundEvent")), Optional: true},
		}},
		{ID: "RefundStatus", Version: model.V1, Kind: model.KindEnum, Enum: []string{"pending", "succeeded"}},
		{ID: "RefundEvent", Version: model.V1, Kind: model.KindObject, Fields: []model.Field{
			// Cycle back to the root must not loop.
			{Name: "refund", Type: model.Ref("Refund"), Optional: true},
		}},
		{ID: "Orphan", Version: model.V1, Kind: model.KindPrimitive, Type: model.TypeString},
		{ID: "AnotherOrphan", Version: model.V1, Kind: model.KindPrimitive, Type: model.TypeString},
	}
	ops := []model.OperationDef{{
		ID: "getRefund", Method: model.MethodGet, Path: "/refunds/{id}", Version: model.V1,
		Parameters: []model.Parameter{model.PathParam("id", "")},
		Responses:  []model.Response{{StatusCode: "200", Description: "OK", Schema: ref("Refund")}},
	}}

	doc, err := New().Compose(newInput(t, schemas, ops))
	require.NoError(t, err)

	var ids []model.SchemaID
	for _, s := range doc.Schemas {
		ids = append(ids, s.ID)
	}
	require.Equal(t, []model.SchemaID{"Refund", "RefundEvent", "RefundStatus"}, ids)
	require.Equal(t, []model.SchemaID{"AnotherOrphan", "Orphan"}, doc.Pruned)
	require.Equal(t, "v1", doc.Info.Version)
	require.Equal(t, model.V1, doc.Version)
}

func TestComposeRequestAndParameterRoots(t *testing.T) {
	schemas := []model.SchemaDef{
		{ID: "RefundRequest", Kind: model.KindObject, Fields: []model.Field{{Name: "amount", Type: model.Integer}}},
		{ID: "Currency", Kind: model.KindEnum, Enum: []string{"USD"}},
	}
	ops := []model.OperationDef{{
		ID: "createRefund", Method: model.MethodPost, Path: "/refunds",
		Parameters: []model.Parameter{{Name: "currency", In: model.LocationQuery, Schema: model.Ref("Currency")}},
		Request:    &model.RequestBody{Required: true, Schema: model.Ref("RefundRequest")},
		Responses:  []model.Response{{StatusCode: "204", Description: "Created"}},
	}}

	doc, err := New().Compose(newInput(t, schemas, ops))
	require.NoError(t, err)
	require.Len(t, doc.Schemas, 2)
	require.Empty(t, doc.Pruned)
}

func TestComposeUnresolved(t *testing.T) {
	schemas := []model.SchemaDef{
		{ID: "Refund", Kind: model.KindObject, Fields: []model.Field{
			{Name: "id", Type: model.String},
			{Name: "metadata", Type: model.Ref("Metadata")},
		}},
	}
	ops := []model.OperationDef{
		{ID: "getRefund", Method: model.MethodGet, Path: "/refunds/{id}",
			Responses: []model.Response{{StatusCode: "200", Schema: ref("RefundX")}}},
		{ID: "listRefunds", Method: model.MethodGet, Path: "/refunds",
			Responses: []model.Response{{StatusCode: "200", Schema: ref("Refund")}}},
		{ID: "updateRefund", Method: model.MethodPost, Path: "/refunds/{id}",
			Request:   &model.RequestBody{Schema: model.Ref("RefundX")},
			Responses: []model.Response{{StatusCode: "200", Schema: ref("Refund")}}},
	}

	doc, err := New().Compose(newInput(t, schemas, ops))
	require.Nil(t, doc)
	require.ErrorIs(t, err, specerr.ErrUnresolvedReference)

	errs := specerr.Flatten(err)
	require.Len(t, errs, 2)

	var first, second *specerr.UnresolvedReferenceError
	require.True(t, errors.As(errs[0], &first))
	require.True(t, errors.As(errs[1], &second))
	require.Equal(t, "Metadata", first.Ref)
	require.Equal(t, []string{"schema Refund field metadata"}, first.From)
	require.Equal(t, "RefundX", second.Ref)
	require.Equal(t, []string{
		"GET /refunds/{id} response 200",
		"POST /refunds/{id} request body",
	}, second.From)
}

func TestComposeOrderingAndGroups(t *testing.T) {
	ok := []model.Response{{StatusCode: "204", Description: "Done"}}
	ops := []model.OperationDef{
		{ID: "deleteRefund", Method: model.MethodDelete, Path: "/refunds/{id}", Tags: []string{"Refunds"}, Responses: ok},
		{ID: "health", Method: model.MethodGet, Path: "/health", Responses: ok},
		{ID: "patchRefund", Method: model.MethodPatch, Path: "/refunds/{id}", Tags: []string{"Refunds"}, Responses: ok},
		{ID: "getRefund", Method: model.MethodGet, Path: "/refunds/{id}", Tags: []string{"Refunds"}, Responses: ok},
		{ID: "createPayment", Method: model.MethodPost, Path: "/payments", Tags: []string{"Payments", "Refunds"}, Responses: ok},
		{ID: "putRefund", Method: model.MethodPut, Path: "/refunds/{id}", Tags: []string{"Refunds"}, Responses: ok},
		{ID: "postRefund", Method: model.MethodPost, Path: "/refunds/{id}", Tags: []string{"Refunds"}, Responses: ok},
		{ID: "ping", Method: model.MethodGet, Path: "/", Responses: ok},
	}

	in := newInput(t, nil, ops)
	in.Tags = []model.Tag{{Name: "Refunds", Description: "Refund lifecycle"}}
	doc, err := New().Compose(in)
	require.NoError(t, err)

	var order []string
	for _, op := range doc.Operations {
		order = append(order, op.ID)
	}
	require.Equal(t, []string{
		"ping", "health", "createPayment",
		"getRefund", "postRefund", "putRefund", "deleteRefund", "patchRefund",
	}, order)

	require.Len(t, doc.Groups, 3)
	require.Equal(t, "Payments", doc.Groups[0].Name)
	require.Equal(t, "Refunds", doc.Groups[1].Name)
	require.Equal(t, model.UntaggedGroup, doc.Groups[2].Name)
	require.Equal(t, []model.OperationKey{
		{Method: model.MethodGet, Path: "/"},
		{Method: model.MethodGet, Path: "/health"},
	}, doc.Groups[2].Operations)
	require.Equal(t, model.OperationKey{Method: model.MethodPost, Path: "/payments"}, doc.Groups[1].Operations[0])
	require.Len(t, doc.Groups[1].Operations, 6)

	require.Equal(t, []model.Tag{
		{Name: "Payments", DisplayName: "Payments"},
		{Name: "Refunds", DisplayName: "Refunds", Description: "Refund lifecycle"},
	}, doc.Tags)
}

func TestComposeDeterministic(t *testing.T) {
	build := func() *model.Document {
		ok := []model.Response{{StatusCode: "204", Description: "Done"}}
		ops := []model.OperationDef{
			{ID: "b", Method: model.MethodPost, Path: "/b", Tags: []string{"y"}, Responses: ok},
			{ID: "a", Method: model.MethodGet, Path: "/a", Tags: []string{"x"}, Responses: ok},
		}
		doc, err := New().Compose(newInput(t, nil, ops))
		require.NoError(t, err)
		return doc
	}
	require.Equal(t, build(), build())
}

func TestDisplayName(t *testing.T) {
	c := New()
	tests := []struct {
		input    string
		expected string
	}{
		{"payment-methods", "Payment Methods"},
		{"frm", "Frm"},
		{"payouts_v2", "Payouts V2"},
		{"Refunds", "Refunds"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, c.DisplayName(tt.input))
		})
	}
}
