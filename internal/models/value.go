// Package models defines the parsed JSON document model: a closed set of
// value variants with source-ordered object keys, the canonical node path
// codec, and a text encoder for the parsed tree.
package models

import "strconv"

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. The six types in this package are the only
// implementations; consumers switch exhaustively on Kind.
//
// A Value is immutable once parsing completes. The preview engine replaces
// the whole tree on re-parse and never mutates it in place, so a Value may
// be read concurrently from any number of goroutines.
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// Bool is a JSON true/false literal.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Number holds the literal source text of a JSON number, so re-encoding
// never changes precision or formatting.
type Number string

func (Number) Kind() Kind { return KindNumber }

// Int64 returns the number as an int64.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// String is a JSON string value.
type String string

func (String) Kind() Kind { return KindString }

// Member is one key/value entry of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object whose members keep their source order.
type Object struct {
	Members []Member
}

func (*Object) Kind() Kind { return KindObject }

// Len returns the number of members.
func (o *Object) Len() int { return len(o.Members) }

// Get returns the value for key and whether the key exists.
func (o *Object) Get(key string) (Value, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set inserts or replaces the value for key. A duplicate key keeps the
// position of its first occurrence, matching ordered-dict semantics.
func (o *Object) Set(key string, v Value) {
	for i, m := range o.Members {
		if m.Key == key {
			o.Members[i].Value = v
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: v})
}

// Array is a JSON array.
type Array struct {
	Elements []Value
}

func (*Array) Kind() Kind { return KindArray }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.Elements) }

// Walk visits every node of the tree depth-first in document order, starting
// with v itself at the empty root path. The callback returns false to stop
// the walk early. The Path passed to fn is freshly allocated per node and
// safe to retain.
func Walk(v Value, fn func(path Path, v Value) bool) {
	walk(v, Path{}, fn)
}

func walk(v Value, p Path, fn func(path Path, v Value) bool) bool {
	if !fn(p, v) {
		return false
	}
	switch node := v.(type) {
	case *Object:
		for _, m := range node.Members {
			if !walk(m.Value, p.Child(Field(m.Key)), fn) {
				return false
			}
		}
	case *Array:
		for i, el := range node.Elements {
			if !walk(el, p.Child(Index(i)), fn) {
				return false
			}
		}
	}
	return true
}
