// Package shape classifies target types into the closed set of shapes the
// decode and encode engines dispatch on: optional wrappers, sequences,
// scalars, and composites. Classification is pure over static type
// information and memoized, so the descriptor for a type is computed once.
package shape

import (
	"reflect"
	"strings"
	"sync"

	"github.com/leeforge/interchange/errors"
	"github.com/leeforge/interchange/scalar"
)

// Kind is the classified shape of a target type.
type Kind int

const (
	// Optional wraps any other shape and is recognized outside of it, so
	// shapes compose: an optional sequence of optional scalars is valid.
	Optional Kind = iota
	// Sequence is an ordered container of one element type.
	Sequence
	// Scalar is a terminal leaf value.
	Scalar
	// Composite is a named-field aggregate constructed in one step.
	Composite
)

func (k Kind) String() string {
	switch k {
	case Optional:
		return "optional"
	case Sequence:
		return "sequence"
	case Scalar:
		return "scalar"
	case Composite:
		return "composite"
	default:
		return "invalid"
	}
}

// Field describes one exported field of a composite type.
type Field struct {
	// Name is the field's declared name, matched verbatim against incoming
	// JSON member names. Struct tags are not consulted: the layer has no
	// renaming surface.
	Name string
	// Index is the field's index within the struct.
	Index int
	// Type is the field's declared type. Its shape resolves lazily, so
	// self-referential composites classify.
	Type reflect.Type
}

// Shape is the classified descriptor of a target type.
type Shape struct {
	Kind Kind
	Type reflect.Type

	// Elem is the optional inner type or the sequence element type.
	Elem reflect.Type
	// Fixed marks a fixed-length sequence (a Go array).
	Fixed bool
	// Scalar is the leaf kind when Kind is Scalar.
	Scalar scalar.Kind
	// Fields lists the exported fields in declared order when Kind is
	// Composite.
	Fields []Field

	exact  map[string]int
	folded map[string]int
}

// FieldNamed resolves a JSON member name to a position in Fields: exact
// match first, then a case-insensitive fallback, since Go exported names are
// capitalized while wire names commonly are not.
func (s *Shape) FieldNamed(name string) (int, bool) {
	if i, ok := s.exact[name]; ok {
		return i, true
	}
	if i, ok := s.folded[strings.ToLower(name)]; ok {
		return i, true
	}
	return 0, false
}

var registry sync.Map // reflect.Type -> *Shape

// Of classifies t, memoizing the result. Unsupported types are reported as
// a configuration-time ShapeError, never as a decode error.
func Of(t reflect.Type) (*Shape, error) {
	if t == nil {
		return nil, errors.NewShape("<nil>", "no type information")
	}
	if cached, ok := registry.Load(t); ok {
		return cached.(*Shape), nil
	}
	s, err := classify(t)
	if err != nil {
		return nil, err
	}
	cached, _ := registry.LoadOrStore(t, s)
	return cached.(*Shape), nil
}

func classify(t reflect.Type) (*Shape, error) {
	// Optional is recognized before anything else so it composes with every
	// other shape.
	if t.Kind() == reflect.Ptr {
		return &Shape{Kind: Optional, Type: t, Elem: t.Elem()}, nil
	}

	// Exact scalar types (time.Time, uuid.UUID, json.Number) win over the
	// struct, array, and string shapes underlying them.
	if k := scalar.KindOf(t); k != scalar.Invalid {
		return &Shape{Kind: Scalar, Type: t, Scalar: k}, nil
	}

	switch t.Kind() {
	case reflect.Slice:
		return &Shape{Kind: Sequence, Type: t, Elem: t.Elem()}, nil

	case reflect.Array:
		return &Shape{Kind: Sequence, Type: t, Elem: t.Elem(), Fixed: true}, nil

	case reflect.Struct:
		s := &Shape{
			Kind:   Composite,
			Type:   t,
			exact:  make(map[string]int),
			folded: make(map[string]int),
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			pos := len(s.Fields)
			s.Fields = append(s.Fields, Field{Name: f.Name, Index: i, Type: f.Type})
			s.exact[f.Name] = pos
			lower := strings.ToLower(f.Name)
			if _, taken := s.folded[lower]; !taken {
				s.folded[lower] = pos
			}
		}
		return s, nil

	default:
		return nil, errors.NewShape(t.String(), "no recognized shape")
	}
}
