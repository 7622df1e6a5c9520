package specerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kolah/paydoc/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"duplicate schema", &DuplicateSchemaError{ID: "Address"}, ErrDuplicateSchema},
		{"duplicate operation", &DuplicateOperationError{Key: model.OperationKey{Method: model.MethodGet, Path: "/refunds"}}, ErrDuplicateOperation},
		{"unresolved", &UnresolvedReferenceError{Ref: "RefundX"}, ErrUnresolvedReference},
		{"version mismatch", &VersionMismatchError{Subject: "schema Refund", Got: model.V2, Want: model.V1}, ErrVersionMismatch},
		{"incomplete", &IncompleteOperationError{Reason: "no success response"}, ErrIncompleteOperation},
		{"unreachable", &UnreachableSchemaError{ID: "Legacy"}, ErrUnreachableSchema},
		{"config", &ConfigError{Option: "version"}, ErrConfig},
		{"verification", &VerificationError{Check: "kin-openapi"}, ErrVerification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			wrapped := fmt.Errorf("generating: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestDuplicateSchemaErrorListsBothShapes(t *testing.T) {
	err := &DuplicateSchemaError{
		ID: "Address",
		Existing: model.SchemaDef{
			ID: "Address", Kind: model.KindObject, Origin: "payments",
			Fields: []model.Field{{Name: "line1", Type: model.String}},
		},
		Conflicting: model.SchemaDef{
			ID: "Address", Kind: model.KindObject, Origin: "payouts",
			Fields: []model.Field{{Name: "city", Type: model.String, Optional: true}},
		},
		Differences: []string{"fields.line1: missing on right"},
	}

	msg := err.Error()
	assert.Contains(t, msg, `duplicate schema "Address"`)
	assert.Contains(t, msg, "object{line1: string} registered by payments")
	assert.Contains(t, msg, "object{city?: string} registered by payouts")
	assert.Contains(t, msg, "fields.line1: missing on right")
}

func TestUnresolvedReferenceErrorMessage(t *testing.T) {
	err := &UnresolvedReferenceError{Ref: "RefundX", From: []string{"GET /refunds/{id} response 200"}}
	assert.Equal(t, `unresolved reference "RefundX" (referenced from GET /refunds/{id} response 200)`, err.Error())

	sec := &UnresolvedReferenceError{Ref: "jwt", Security: true}
	assert.Equal(t, `unresolved security scheme "jwt"`, sec.Error())
}

func TestVersionMismatchUntagged(t *testing.T) {
	err := &VersionMismatchError{Subject: "operation GET /refunds", Want: model.V1}
	assert.Equal(t, "version mismatch: operation GET /refunds is untagged, document is v1", err.Error())
}

func TestList(t *testing.T) {
	var l List
	require.NoError(t, l.ErrorOrNil())

	first := &UnresolvedReferenceError{Ref: "A"}
	second := &UnresolvedReferenceError{Ref: "B"}
	l = append(l, first, second)

	err := l.ErrorOrNil()
	require.Error(t, err)
	assert.Equal(t, "unresolved reference \"A\"\nunresolved reference \"B\"", err.Error())
	require.ErrorIs(t, err, ErrUnresolvedReference)

	var target *UnresolvedReferenceError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "A", target.Ref)

	wrapped := fmt.Errorf("composing: %w", err)
	assert.Len(t, Flatten(wrapped), 2)
	assert.Len(t, Flatten(first), 1)
	assert.Nil(t, Flatten(nil))
}
