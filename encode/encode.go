// Package encode converts arbitrary runtime values into JSON text by
// recursing over their runtime shape, the mirror image of the type-directed
// decoder: dispatch here is value-driven, not type-driven.
package encode

import (
	stdjson "encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leeforge/interchange/ast"
	"github.com/leeforge/interchange/decode"
	"github.com/leeforge/interchange/errors"
	"github.com/leeforge/interchange/logging"
	"github.com/leeforge/interchange/scalar"
	"github.com/leeforge/interchange/shape"
)

// Options holds encode settings.
type Options struct {
	indent        int
	maxDepth      int
	applyDefaults bool
}

// Option customizes an encode call.
type Option func(*Options)

// WithIndent renders the output indented by step spaces per nesting level.
func WithIndent(step int) Option {
	return func(opts *Options) {
		opts.indent = step
	}
}

// WithMaxDepth caps recursion depth. Inputs must be acyclic trees; a
// self-referential value aborts at this cap instead of exhausting the stack.
// Non-positive values keep the default cap.
func WithMaxDepth(n int) Option {
	return func(opts *Options) {
		if n > 0 {
			opts.maxDepth = n
		}
	}
}

// WithDefaults fills declared default-tagged fields of an addressable struct
// before encoding it.
func WithDefaults() Option {
	return func(opts *Options) {
		opts.applyDefaults = true
	}
}

func applyOptions(opts ...Option) *Options {
	options := &Options{maxDepth: ast.DefaultMaxDepth}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// JSON encodes v as JSON text. Encoding is total for acyclic, representable
// inputs.
func JSON(v any, opts ...Option) (string, error) {
	options := applyOptions(opts...)

	if options.applyDefaults {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			if err := defaults.Set(v); err != nil {
				return "", errors.New("apply defaults: " + err.Error())
			}
		}
	}

	node, err := encodeValue(reflect.ValueOf(v), options.maxDepth)
	if err != nil {
		logging.Debug("encode failed", zap.Error(err))
		return "", err
	}
	if options.indent > 0 {
		return ast.RenderIndent(node, options.indent), nil
	}
	return ast.Render(node), nil
}

// Node converts v into a JSON AST node without rendering it.
func Node(v any, opts ...Option) (ast.Node, error) {
	options := applyOptions(opts...)
	return encodeValue(reflect.ValueOf(v), options.maxDepth)
}

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(uuid.UUID{})
	numType  = reflect.TypeOf(stdjson.Number(""))
)

func encodeValue(rv reflect.Value, depth int) (ast.Node, error) {
	if depth <= 0 {
		return ast.Node{}, errors.New("maximum nesting depth exceeded (cyclic value?)")
	}
	if !rv.IsValid() {
		return ast.Null(), nil
	}

	// Leaf types carried as whole values come before the generic kinds so
	// time.Time, uuid.UUID, and json.Number are not taken apart.
	switch rv.Type() {
	case timeType:
		return ast.String(scalar.FormatTime(rv.Interface().(time.Time))), nil
	case uuidType:
		return ast.String(rv.Interface().(uuid.UUID).String()), nil
	case numType:
		text := rv.String()
		if text == "" {
			text = "0"
		}
		return ast.Float(text), nil
	}

	if rv.CanInterface() {
		if obj, ok := rv.Interface().(*decode.Object); ok {
			if obj == nil {
				return ast.Null(), nil
			}
			return encodeObject(obj, depth)
		}
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ast.Number(strconv.FormatInt(rv.Int(), 10)), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ast.Number(strconv.FormatUint(rv.Uint(), 10)), nil

	case reflect.Float32:
		return encodeFloat(rv, 32)

	case reflect.Float64:
		return encodeFloat(rv, 64)

	case reflect.String:
		return ast.String(rv.String()), nil

	case reflect.Bool:
		return ast.Boolean(rv.Bool()), nil

	case reflect.Ptr, reflect.Interface:
		// Optional absent encodes as null; present encodes the wrapped
		// value, flattened.
		if rv.IsNil() {
			return ast.Null(), nil
		}
		return encodeValue(rv.Elem(), depth-1)

	case reflect.Slice:
		if rv.IsNil() {
			return ast.Null(), nil
		}
		return encodeSequence(rv, depth)

	case reflect.Array:
		return encodeSequence(rv, depth)

	case reflect.Map:
		if rv.IsNil() {
			return ast.Null(), nil
		}
		return encodeMap(rv, depth)

	case reflect.Struct:
		return encodeComposite(rv, depth)

	default:
		return ast.Node{}, errors.NewShape(rv.Type().String(), "value cannot be encoded")
	}
}

// encodeFloat rejects NaN and the infinities: JSON has no numeral for them,
// so passing them through would produce unparseable output.
func encodeFloat(rv reflect.Value, bits int) (ast.Node, error) {
	f := rv.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ast.Node{}, errors.NewShape(rv.Type().String(),
			"value "+strconv.FormatFloat(f, 'g', -1, bits)+" has no JSON numeral")
	}
	return ast.Float(strconv.FormatFloat(f, 'g', -1, bits)), nil
}

func encodeSequence(rv reflect.Value, depth int) (ast.Node, error) {
	items := make([]ast.Node, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item, err := encodeValue(rv.Index(i), depth-1)
		if err != nil {
			return ast.Node{}, err
		}
		items[i] = item
	}
	return ast.Array(items...), nil
}

// encodeComposite enumerates the exported fields of a plain composite in
// declared order, reusing the classifier's field table.
func encodeComposite(rv reflect.Value, depth int) (ast.Node, error) {
	s, err := shape.Of(rv.Type())
	if err != nil {
		return ast.Node{}, err
	}
	members := make([]ast.Member, 0, len(s.Fields))
	for _, field := range s.Fields {
		value, err := encodeValue(rv.Field(field.Index), depth-1)
		if err != nil {
			return ast.Node{}, err
		}
		members = append(members, ast.Member{Name: field.Name, Value: value})
	}
	return ast.Record(members...), nil
}

// encodeMap renders a string-keyed map as a record in sorted key order, the
// only deterministic order a Go map offers.
func encodeMap(rv reflect.Value, depth int) (ast.Node, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return ast.Node{}, errors.NewShape(rv.Type().String(), "map keys must be strings")
	}
	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)

	members := make([]ast.Member, 0, len(keys))
	for _, key := range keys {
		value, err := encodeValue(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())), depth-1)
		if err != nil {
			return ast.Node{}, err
		}
		members = append(members, ast.Member{Name: key, Value: value})
	}
	return ast.Record(members...), nil
}

// encodeObject preserves the insertion order of a dynamically decoded
// object, so dynamic round trips keep member order.
func encodeObject(obj *decode.Object, depth int) (ast.Node, error) {
	members := make([]ast.Member, 0, obj.Len())
	for _, key := range obj.Keys() {
		v, _ := obj.Get(key)
		value, err := encodeValue(reflect.ValueOf(v), depth-1)
		if err != nil {
			return ast.Node{}, err
		}
		members = append(members, ast.Member{Name: key, Value: value})
	}
	return ast.Record(members...), nil
}
