// Package errors defines the failure kinds of the interchange layer: the
// single DecodeError raised when JSON does not structurally match a target
// shape, and the configuration-time ShapeError raised for target types the
// classifier does not recognize.
package errors

import (
	"fmt"
	"strings"
)

// DecodeError reports the first structural mismatch hit during a decode.
// Propagation is fail-fast: the first mismatch aborts the whole decode, no
// partial value is returned, and errors are never aggregated.
type DecodeError struct {
	// Expected is the target shape or type that was being decoded into.
	Expected string `json:"expected,omitempty"`
	// Got is the JSON node kind actually encountered.
	Got string `json:"got,omitempty"`
	// Raw is the raw text that failed a scalar-specific parse.
	Raw string `json:"raw,omitempty"`
	// Field is the dotted path to the failing member, when known.
	Field string `json:"field,omitempty"`
	// Message overrides the derived description when set.
	Message string `json:"message,omitempty"`
	// Inner is the underlying cause, if any.
	Inner error `json:"-"`
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode error")
	if e.Field != "" {
		fmt.Fprintf(&b, ": field '%s'", e.Field)
	}
	switch {
	case e.Message != "":
		b.WriteString(": " + e.Message)
	case e.Raw != "":
		fmt.Fprintf(&b, ": cannot decode '%s' as %s", e.Raw, e.Expected)
	default:
		fmt.Fprintf(&b, ": expected %s, got %s", e.Expected, e.Got)
	}
	if e.Inner != nil {
		b.WriteString(": " + e.Inner.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Inner
}

// WithField records the dotted path to the failing member.
func (e *DecodeError) WithField(path string) *DecodeError {
	e.Field = path
	return e
}

// WithInner records the underlying cause.
func (e *DecodeError) WithInner(err error) *DecodeError {
	e.Inner = err
	return e
}

// New creates a DecodeError with a fixed message.
func New(message string) *DecodeError {
	return &DecodeError{Message: message}
}

// NewMismatch creates a DecodeError for a node whose kind does not match the
// target shape.
func NewMismatch(expected, got string) *DecodeError {
	return &DecodeError{Expected: expected, Got: got}
}

// NewScalar creates a DecodeError for raw text that failed a scalar parse.
func NewScalar(expected, raw string, inner error) *DecodeError {
	return &DecodeError{Expected: expected, Raw: raw, Inner: inner}
}

// NewUnknownField creates a DecodeError for a JSON member with no matching
// field on the composite target.
func NewUnknownField(name, composite string) *DecodeError {
	return &DecodeError{
		Expected: composite,
		Message:  fmt.Sprintf("no such field '%s' in %s", name, composite),
	}
}

// NewMissingField creates a DecodeError for a non-optional composite field
// absent from the incoming JSON object.
func NewMissingField(name, composite string) *DecodeError {
	return &DecodeError{
		Expected: composite,
		Message:  fmt.Sprintf("missing required field '%s' in %s", name, composite),
	}
}

// ShapeError reports a target type the classifier cannot give a shape to.
// It is a configuration-time error, distinct from decode failures.
type ShapeError struct {
	// Type is the rejected target type.
	Type string `json:"type"`
	// Message describes why the type has no shape.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("unsupported type %s: %s", e.Type, e.Message)
}

// NewShape creates a ShapeError for the given type.
func NewShape(typeName, message string) *ShapeError {
	return &ShapeError{Type: typeName, Message: message}
}
