package decode

import (
	"encoding/json"
	"strconv"

	"github.com/leeforge/interchange/ast"
	"github.com/leeforge/interchange/errors"
)

// Object is an insertion-ordered string-to-value mapping, the composite form
// produced by the dynamic decoder. Values are nil, bool, json.Number,
// float64, string, []any, or nested *Object.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores a value, appending the key on first insertion and keeping its
// original position on overwrite.
func (o *Object) Set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Dynamic decodes JSON text with no target type at all. The top-level JSON
// value must be an object; anything else is a hard error.
func Dynamic(text string, opts ...Option) (*Object, error) {
	options := applyOptions(opts...)

	node, err := ast.ParseDepth(text, options.maxDepth)
	if err != nil {
		return nil, err
	}
	if node.Kind() != ast.KindRecord {
		return nil, errors.New("input JSON could not be decoded to an object")
	}
	return dynamicRecord(node), nil
}

// DynamicNode converts an already-parsed AST node into the untyped nested
// form used by Dynamic.
func DynamicNode(node ast.Node) any {
	return dynamicValue(node)
}

func dynamicValue(node ast.Node) any {
	switch node.Kind() {
	case ast.KindNull:
		return nil
	case ast.KindBoolean:
		return node.Bool()
	case ast.KindNumber:
		// Integral numerals keep their exact decimal text.
		return json.Number(node.Text())
	case ast.KindFloat:
		f, err := strconv.ParseFloat(node.Text(), 64)
		if err != nil {
			// Out of float64 range: keep the exact text instead.
			return json.Number(node.Text())
		}
		return f
	case ast.KindString:
		return node.Text()
	case ast.KindArray:
		items := node.Items()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = dynamicValue(item)
		}
		return out
	case ast.KindRecord:
		return dynamicRecord(node)
	default:
		return nil
	}
}

func dynamicRecord(node ast.Node) *Object {
	obj := NewObject()
	for _, member := range node.Members() {
		obj.Set(member.Name, dynamicValue(member.Value))
	}
	return obj
}
