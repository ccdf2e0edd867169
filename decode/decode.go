// Package decode converts JSON text into strongly-typed values by recursing
// over a parsed AST under the direction of the target type's classified
// shape. It also provides the dynamic decoder, which produces an untyped
// ordered structure with no target type at all.
package decode

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/leeforge/interchange/ast"
	"github.com/leeforge/interchange/errors"
	"github.com/leeforge/interchange/logging"
	"github.com/leeforge/interchange/scalar"
	"github.com/leeforge/interchange/shape"
)

// Options holds decode settings.
type Options struct {
	maxDepth int
}

// Option customizes a decode call.
type Option func(*Options)

// WithMaxDepth caps the nesting depth accepted from the input. Untrusted
// payloads should carry an explicit cap; the default is ast.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(opts *Options) {
		opts.maxDepth = n
	}
}

func applyOptions(opts ...Option) *Options {
	options := &Options{maxDepth: ast.DefaultMaxDepth}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// JSON decodes JSON text into a value of type T. It fails with a DecodeError
// on any structural mismatch or unparsable scalar; no partial value is ever
// returned.
func JSON[T any](text string, opts ...Option) (T, error) {
	var out T
	if err := Value(text, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Value decodes JSON text into v, which must be a non-nil pointer. This is
// the non-generic companion of JSON.
func Value(text string, v any, opts ...Option) error {
	options := applyOptions(opts...)

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("target must be a non-nil pointer")
	}

	node, err := ast.ParseDepth(text, options.maxDepth)
	if err != nil {
		logging.Debug("decode: parse failed", zap.Error(err))
		return err
	}

	result, err := Node(node, rv.Type().Elem())
	if err != nil {
		logging.Debug("decode failed",
			zap.String("target", rv.Type().Elem().String()),
			zap.Error(err))
		return err
	}
	rv.Elem().Set(result)
	return nil
}

// Node decodes an already-parsed AST node into a value of the given target
// type. The returned value is fully constructed: a failed decode yields no
// value at all.
func Node(node ast.Node, t reflect.Type) (reflect.Value, error) {
	return decodeNode(node, t, "")
}

func decodeNode(node ast.Node, t reflect.Type, path string) (reflect.Value, error) {
	s, err := shape.Of(t)
	if err != nil {
		return reflect.Value{}, err
	}

	// Null maps to an optional's "no value" state and nothing else.
	if node.Kind() == ast.KindNull {
		if s.Kind == shape.Optional {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, errors.NewMismatch("non-null "+t.String(), "null").WithField(path)
	}

	// Any non-null node decodes through an optional into its inner shape,
	// flattened into a single pointer.
	if s.Kind == shape.Optional {
		inner, err := decodeNode(node, s.Elem, path)
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(s.Elem)
		ptr.Elem().Set(inner)
		return ptr, nil
	}

	switch node.Kind() {
	case ast.KindBoolean:
		if s.Kind != shape.Scalar || s.Scalar != scalar.Bool {
			return reflect.Value{}, errors.NewMismatch(t.String(), "boolean").WithField(path)
		}
		dst := reflect.New(t).Elem()
		dst.SetBool(node.Bool())
		return dst, nil

	case ast.KindNumber, ast.KindFloat:
		if s.Kind != shape.Scalar || !s.Scalar.Numeric() {
			return reflect.Value{}, errors.NewMismatch(t.String(), node.Kind().String()).WithField(path)
		}
		dst := reflect.New(t).Elem()
		if err := scalar.FromNumber(node.Text(), dst); err != nil {
			return reflect.Value{}, errors.NewScalar(t.String(), node.Text(), err).WithField(path)
		}
		return dst, nil

	case ast.KindString:
		if s.Kind != shape.Scalar || !s.Scalar.Textual() {
			return reflect.Value{}, errors.NewMismatch(t.String(), "string").WithField(path)
		}
		dst := reflect.New(t).Elem()
		if err := scalar.FromString(node.Text(), dst); err != nil {
			return reflect.Value{}, errors.NewScalar(t.String(), node.Text(), err).WithField(path)
		}
		return dst, nil

	case ast.KindArray:
		if s.Kind != shape.Sequence {
			return reflect.Value{}, errors.NewMismatch(t.String(), "array").WithField(path)
		}
		return decodeSequence(node.Items(), s, t, path)

	case ast.KindRecord:
		if s.Kind != shape.Composite {
			return reflect.Value{}, errors.NewMismatch(t.String(), "object").WithField(path)
		}
		return decodeComposite(node.Members(), s, t, path)

	default:
		return reflect.Value{}, errors.NewMismatch(t.String(), node.Kind().String()).WithField(path)
	}
}

func decodeSequence(items []ast.Node, s *shape.Shape, t reflect.Type, path string) (reflect.Value, error) {
	if s.Fixed && len(items) != t.Len() {
		msg := fmt.Sprintf("expected %d elements for %s, got %d", t.Len(), t.String(), len(items))
		return reflect.Value{}, errors.New(msg).WithField(path)
	}

	var seq reflect.Value
	if s.Fixed {
		seq = reflect.New(t).Elem()
	} else {
		seq = reflect.MakeSlice(t, len(items), len(items))
	}

	for i, item := range items {
		elem, err := decodeNode(item, s.Elem, indexPath(path, i))
		if err != nil {
			return reflect.Value{}, err
		}
		seq.Index(i).Set(elem)
	}
	return seq, nil
}

func decodeComposite(members []ast.Member, s *shape.Shape, t reflect.Type, path string) (reflect.Value, error) {
	// The composite is built into a fresh value and handed back whole:
	// callers never observe a partially-decoded composite.
	out := reflect.New(t).Elem()
	seen := make([]bool, len(s.Fields))

	for _, member := range members {
		pos, ok := s.FieldNamed(member.Name)
		if !ok {
			return reflect.Value{}, errors.NewUnknownField(member.Name, t.String()).WithField(path)
		}
		field := s.Fields[pos]
		value, err := decodeNode(member.Value, field.Type, memberPath(path, field.Name))
		if err != nil {
			return reflect.Value{}, err
		}
		out.Field(field.Index).Set(value)
		seen[pos] = true
	}

	// Absent keys: optional fields stay "no value", non-optional fields are
	// an error rather than being silently skipped.
	for pos, field := range s.Fields {
		if seen[pos] || field.Type.Kind() == reflect.Ptr {
			continue
		}
		return reflect.Value{}, errors.NewMissingField(field.Name, t.String()).WithField(path)
	}
	return out, nil
}

func memberPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
