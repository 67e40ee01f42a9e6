package models

import (
	"fmt"
	"sort"
	"strings"
)

// EncodeOptions control Encode output.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// SortKeys orders object keys alphabetically instead of source order.
	// The collapse-threshold line count uses sorted keys so the decision is
	// stable across runs.
	SortKeys bool
}

// Encode serializes a parsed value back to indented JSON text. Non-ASCII
// runes are written as-is rather than escaped, so the line count matches
// what a unicode-preserving dump of the document would produce.
func Encode(v Value, opts EncodeOptions) string {
	var b strings.Builder
	encodeValue(&b, v, opts, 0)
	return b.String()
}

// LineCount returns the number of lines Encode would produce.
func LineCount(v Value, opts EncodeOptions) int {
	return strings.Count(Encode(v, opts), "\n") + 1
}

func encodeValue(b *strings.Builder, v Value, opts EncodeOptions, level int) {
	switch node := v.(type) {
	case nil, Null:
		b.WriteString("null")
	case Bool:
		if node {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Number:
		b.WriteString(string(node))
	case String:
		encodeString(b, string(node))
	case *Object:
		if len(node.Members) == 0 {
			b.WriteString("{}")
			return
		}
		members := node.Members
		if opts.SortKeys {
			members = append([]Member(nil), node.Members...)
			sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
		}
		b.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, opts, level+1)
			encodeString(b, m.Key)
			b.WriteString(": ")
			encodeValue(b, m.Value, opts, level+1)
		}
		newline(b, opts, level)
		b.WriteByte('}')
	case *Array:
		if len(node.Elements) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, el := range node.Elements {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, opts, level+1)
			encodeValue(b, el, opts, level+1)
		}
		newline(b, opts, level)
		b.WriteByte(']')
	}
}

func newline(b *strings.Builder, opts EncodeOptions, level int) {
	b.WriteByte('\n')
	for i := 0; i < level*opts.Indent; i++ {
		b.WriteByte(' ')
	}
}

func encodeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
