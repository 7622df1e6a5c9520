// Package specerr provides the error kinds reported while assembling an API document.
//
// Every kind has a sentinel for errors.Is and a typed error for errors.As:
//
//	var dup *specerr.DuplicateSchemaError
//	if errors.As(err, &dup) {
//	    fmt.Println(dup.Existing.Shape(), dup.Conflicting.Shape())
//	}
//
// All kinds are detected at generation time. They point at a defect in a
// provider's declarations, never at something a client of the emitted
// document could observe.
package specerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kolah/paydoc/internal/model"
)

var (
	// ErrDuplicateSchema indicates a schema ID was registered with two different shapes.
	ErrDuplicateSchema = errors.New("duplicate schema")

	// ErrDuplicateOperation indicates an operation was registered twice.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrUnresolvedReference indicates a named reference with no matching definition.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrVersionMismatch indicates a definition of the inactive API version in the document.
	ErrVersionMismatch = errors.New("version mismatch")

	// ErrIncompleteOperation indicates an operation missing required parts.
	ErrIncompleteOperation = errors.New("incomplete operation")

	// ErrUnreachableSchema indicates a registered schema no operation reaches.
	ErrUnreachableSchema = errors.New("unreachable schema")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrVerification indicates the serialized document failed an emission check.
	ErrVerification = errors.New("verification error")
)

// DuplicateSchemaError reports a schema ID registered with conflicting definitions.
// The registry keeps Existing; Conflicting was rejected.
type DuplicateSchemaError struct {
	ID          model.SchemaID
	Existing    model.SchemaDef
	Conflicting model.SchemaDef
	// Differences lists structural differences, one per line.
	Differences []string
}

func (e *DuplicateSchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "duplicate schema %q", e.ID)
	fmt.Fprintf(&b, ": %s registered by %s", e.Existing.Shape(), origin(e.Existing.Origin))
	fmt.Fprintf(&b, ", conflicting %s registered by %s", e.Conflicting.Shape(), origin(e.Conflicting.Origin))
	if len(e.Differences) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Differences, "; "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *DuplicateSchemaError) Is(target error) bool {
	return target == ErrDuplicateSchema
}

// DuplicateOperationError reports a method+path or operationId registered twice.
type DuplicateOperationError struct {
	Key               model.OperationKey
	OperationID       string
	ExistingOrigin    string
	ConflictingOrigin string
	// ByID is true when the collision is on operationId rather than method+path.
	ByID bool
}

func (e *DuplicateOperationError) Error() string {
	if e.ByID {
		return fmt.Sprintf("duplicate operation id %q: %s (%s) collides with an operation registered by %s",
			e.OperationID, e.Key, origin(e.ConflictingOrigin), origin(e.ExistingOrigin))
	}
	return fmt.Sprintf("duplicate operation %s: registered by %s and %s",
		e.Key, origin(e.ExistingOrigin), origin(e.ConflictingOrigin))
}

func (e *DuplicateOperationError) Is(target error) bool {
	return target == ErrDuplicateOperation
}

// UnresolvedReferenceError reports a named TypeRef or security scheme with no definition.
type UnresolvedReferenceError struct {
	Ref string
	// Security is true when Ref names a security scheme rather than a schema.
	Security bool
	// From lists the places that use the reference, e.g. "GET /refunds/{id} response 200".
	From []string
}

func (e *UnresolvedReferenceError) Error() string {
	kind := "unresolved reference"
	if e.Security {
		kind = "unresolved security scheme"
	}
	msg := fmt.Sprintf("%s %q", kind, e.Ref)
	if len(e.From) > 0 {
		msg += " (referenced from " + strings.Join(e.From, ", ") + ")"
	}
	return msg
}

func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// VersionMismatchError reports a definition tagged with a version other than the document's.
type VersionMismatchError struct {
	Subject string
	Got     model.APIVersion
	Want    model.APIVersion
}

func (e *VersionMismatchError) Error() string {
	got := string(e.Got)
	if got == "" {
		got = "untagged"
	}
	return fmt.Sprintf("version mismatch: %s is %s, document is %s", e.Subject, got, e.Want)
}

func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}

// IncompleteOperationError reports an operation missing a required part.
type IncompleteOperationError struct {
	Key    model.OperationKey
	Reason string
}

func (e *IncompleteOperationError) Error() string {
	return fmt.Sprintf("incomplete operation %s: %s", e.Key, e.Reason)
}

func (e *IncompleteOperationError) Is(target error) bool {
	return target == ErrIncompleteOperation
}

// UnreachableSchemaError reports a pruned schema when unreachable schemas are
// treated as errors.
type UnreachableSchemaError struct {
	ID     model.SchemaID
	Origin string
}

func (e *UnreachableSchemaError) Error() string {
	return fmt.Sprintf("unreachable schema %q registered by %s", e.ID, origin(e.Origin))
}

func (e *UnreachableSchemaError) Is(target error) bool {
	return target == ErrUnreachableSchema
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// VerificationError reports a failed check on the serialized document.
type VerificationError struct {
	// Check names the gate that failed (e.g. "structure", "kin-openapi", "examples").
	Check   string
	Message string
	Cause   error
}

func (e *VerificationError) Error() string {
	msg := "verification failed (" + e.Check + ")"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *VerificationError) Unwrap() error {
	return e.Cause
}

func (e *VerificationError) Is(target error) bool {
	return target == ErrVerification
}

func origin(s string) string {
	if s == "" {
		return "<unknown>"
	}
	return s
}
