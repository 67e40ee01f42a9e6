package jsonpath

// Segment is a single step in an expression, containing one or more selectors.
// If Descendant is true, this segment was preceded by ".." (recursive descent).
type Segment struct {
	Selectors  []Selector
	Descendant bool
}

// Expr is a compiled expression. A bare "$" compiles to zero segments and
// matches only the document root. A compiled Expr is immutable and safe for
// concurrent use.
type Expr struct {
	Segments []Segment
	Raw      string
}

// Compile parses an expression string.
func Compile(raw string) (*Expr, error) {
	return parseExpr(raw)
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw string) *Expr {
	e, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return e
}
