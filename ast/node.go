package ast

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindNull is the JSON null literal.
	KindNull Kind = iota
	// KindBoolean is a JSON true/false literal.
	KindBoolean
	// KindNumber is a JSON numeral with no fractional or exponent part.
	KindNumber
	// KindFloat is a JSON numeral carrying a fractional or exponent part.
	KindFloat
	// KindString is a JSON string.
	KindString
	// KindArray is a JSON array.
	KindArray
	// KindRecord is a JSON object. Member order is preserved.
	KindRecord
)

// String returns the JSON-speak name of the kind, as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindRecord:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one name/value pair of a record node.
type Member struct {
	Name  string
	Value Node
}

// Node is a single node of a parsed JSON tree. Nodes are immutable after
// construction and are meant to be consumed once, within a single decode or
// render call. The zero value is the null node.
type Node struct {
	kind    Kind
	boolean bool
	text    string
	items   []Node
	members []Member
}

// Null returns the null node.
func Null() Node {
	return Node{kind: KindNull}
}

// Boolean returns a boolean node.
func Boolean(b bool) Node {
	return Node{kind: KindBoolean, boolean: b}
}

// Number returns an integral numeric node. The text must be a valid JSON
// numeral; it is written to the output verbatim.
func Number(text string) Node {
	return Node{kind: KindNumber, text: text}
}

// Float returns a fractional numeric node. The text must be a valid JSON
// numeral; it is written to the output verbatim.
func Float(text string) Node {
	return Node{kind: KindFloat, text: text}
}

// String returns a string node.
func String(text string) Node {
	return Node{kind: KindString, text: text}
}

// Array returns an array node holding the given items in order.
func Array(items ...Node) Node {
	return Node{kind: KindArray, items: items}
}

// Record returns a record node holding the given members in order.
func Record(members ...Member) Node {
	return Node{kind: KindRecord, members: members}
}

// Kind returns the variant of the node.
func (n Node) Kind() Kind {
	return n.kind
}

// Bool returns the value of a boolean node.
func (n Node) Bool() bool {
	return n.boolean
}

// Text returns the payload of a number, float, or string node.
func (n Node) Text() string {
	return n.text
}

// Items returns the elements of an array node, in document order.
func (n Node) Items() []Node {
	return n.items
}

// Members returns the name/value pairs of a record node, in document order.
func (n Node) Members() []Member {
	return n.members
}
