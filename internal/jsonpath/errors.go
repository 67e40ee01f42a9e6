// Package jsonpath compiles and evaluates JSONPath-style filter expressions
// against the ordered value model. Matches carry the full segment chain from
// the root, so callers can derive canonical node addresses and walk ancestor
// chains without re-searching the tree.
package jsonpath

import "fmt"

// MaxExprLength is the maximum byte length of a single expression.
const MaxExprLength = 10000

// ParseError is returned when an expression cannot be parsed.
type ParseError struct {
	Expr    string
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d in %q: %s", e.Pos, e.Expr, e.Message)
}
