package ast

import (
	jsoniter "github.com/json-iterator/go"
)

// Render serializes a Node tree back to compact JSON text.
func Render(n Node) string {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)
	writeNode(stream, n)
	return string(stream.Buffer())
}

// RenderIndent serializes a Node tree to JSON text indented by step spaces
// per nesting level.
func RenderIndent(n Node, step int) string {
	if step <= 0 {
		return Render(n)
	}
	cfg := jsoniter.Config{
		IndentionStep:          step,
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	stream := cfg.BorrowStream(nil)
	defer cfg.ReturnStream(stream)
	writeNode(stream, n)
	return string(stream.Buffer())
}

func writeNode(stream *jsoniter.Stream, n Node) {
	switch n.kind {
	case KindNull:
		stream.WriteNil()
	case KindBoolean:
		stream.WriteBool(n.boolean)
	case KindNumber, KindFloat:
		// Numeric text is a valid JSON numeral by construction.
		stream.WriteRaw(n.text)
	case KindString:
		stream.WriteString(n.text)
	case KindArray:
		stream.WriteArrayStart()
		for i, item := range n.items {
			if i > 0 {
				stream.WriteMore()
			}
			writeNode(stream, item)
		}
		stream.WriteArrayEnd()
	case KindRecord:
		stream.WriteObjectStart()
		for i, member := range n.members {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(member.Name)
			writeNode(stream, member.Value)
		}
		stream.WriteObjectEnd()
	}
}
