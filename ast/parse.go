package ast

import (
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/leeforge/interchange/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultMaxDepth is the nesting depth limit applied when no explicit limit
// is given. Recursion depth equals input nesting depth, so the limit guards
// against stack exhaustion on untrusted input.
const DefaultMaxDepth = 10000

// Parse tokenizes JSON text into a Node tree using the default depth limit.
func Parse(text string) (Node, error) {
	return ParseDepth(text, DefaultMaxDepth)
}

// ParseDepth tokenizes JSON text into a Node tree, failing once nesting
// exceeds maxDepth.
func ParseDepth(text string, maxDepth int) (Node, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	iter := jsoniter.ParseString(json, text)
	node, err := parseValue(iter, maxDepth)
	if err != nil {
		return Node{}, err
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return Node{}, errors.New("invalid JSON: " + iter.Error.Error())
	}

	// The whole input must be a single JSON value.
	if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
		return Node{}, errors.New("invalid JSON: unexpected trailing data")
	}
	return node, nil
}

func parseValue(iter *jsoniter.Iterator, depth int) (Node, error) {
	if depth <= 0 {
		return Node{}, errors.New("maximum nesting depth exceeded")
	}

	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null(), nil

	case jsoniter.BoolValue:
		return Boolean(iter.ReadBool()), nil

	case jsoniter.NumberValue:
		text := string(iter.ReadNumber())
		if iter.Error != nil && iter.Error != io.EOF {
			return Node{}, errors.New("invalid JSON: " + iter.Error.Error())
		}
		if strings.ContainsAny(text, ".eE") {
			return Float(text), nil
		}
		return Number(text), nil

	case jsoniter.StringValue:
		return String(iter.ReadString()), nil

	case jsoniter.ArrayValue:
		var (
			items   []Node
			itemErr error
		)
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			child, err := parseValue(it, depth-1)
			if err != nil {
				itemErr = err
				return false
			}
			items = append(items, child)
			return true
		})
		if itemErr != nil {
			return Node{}, itemErr
		}
		if iter.Error != nil && iter.Error != io.EOF {
			return Node{}, errors.New("invalid JSON: " + iter.Error.Error())
		}
		return Array(items...), nil

	case jsoniter.ObjectValue:
		var (
			members   []Member
			memberErr error
		)
		iter.ReadObjectCB(func(it *jsoniter.Iterator, name string) bool {
			child, err := parseValue(it, depth-1)
			if err != nil {
				memberErr = err
				return false
			}
			members = append(members, Member{Name: name, Value: child})
			return true
		})
		if memberErr != nil {
			return Node{}, memberErr
		}
		if iter.Error != nil && iter.Error != io.EOF {
			return Node{}, errors.New("invalid JSON: " + iter.Error.Error())
		}
		return Record(members...), nil

	default:
		if iter.Error == io.EOF {
			return Node{}, errors.New("invalid JSON: unexpected end of input")
		}
		return Node{}, errors.New("invalid JSON: unexpected token")
	}
}
