package decl

import (
	"testing"

	"github.com/kolah/paydoc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStampsVersion(t *testing.T) {
	c := NewSet(model.V2).
		Object("Refund", "A refund", Req("id", model.String, ""), Opt("reason", model.String, "")).
		Enum("RefundStatus", "", "pending", "succeeded").
		Example("Refund", map[string]any{"id": "ref_1"}).
		Op(model.OperationDef{Method: model.MethodGet, Path: "/v2/refunds/{id}"}).
		Tag("Refunds", "Refund lifecycle").
		Contribution()

	require.Len(t, c.Schemas, 2)
	for _, s := range c.Schemas {
		assert.Equal(t, model.V2, s.Version)
	}
	assert.Equal(t, []string{"id"}, c.Schemas[0].Required())
	assert.NotNil(t, c.Schemas[0].Example)
	assert.Nil(t, c.Schemas[1].Example)
	assert.Equal(t, model.TypeString, c.Schemas[1].Type)

	require.Len(t, c.Operations, 1)
	assert.Equal(t, model.V2, c.Operations[0].Version)
	assert.Equal(t, []model.Tag{{Name: "Refunds", Description: "Refund lifecycle"}}, c.Tags)
}

func TestResponses(t *testing.T) {
	rs := Responses(OK("Refund", "Refund"))
	require.Len(t, rs, 4)
	assert.True(t, rs[0].IsSuccess())
	assert.Equal(t, model.SchemaID("Refund"), rs[0].Schema.Ref)
	for _, r := range rs[1:] {
		assert.False(t, r.IsSuccess())
		assert.Equal(t, ErrorSchema, r.Schema.Ref)
	}
}

func TestNull(t *testing.T) {
	f := Null("reason", model.String, "")
	assert.True(t, f.Optional)
	assert.True(t, f.Nullable)
}
