package jsonpath

import "github.com/jasondoong/formiko/internal/models"

// Match is one result of evaluating an expression: the matched value and the
// segment chain from the document root to it. A root match has an empty Path.
type Match struct {
	Value models.Value
	Path  models.Path
}

// Find evaluates the expression against doc and returns all matches in
// document order. It is a total function: an expression that selects nothing
// returns an empty slice.
func (e *Expr) Find(doc models.Value) []Match {
	current := []Match{{Value: doc, Path: models.Path{}}}
	for _, seg := range e.Segments {
		var next []Match
		for _, m := range current {
			if seg.Descendant {
				// ".." applies the selectors to the children of the node
				// itself and of every descendant.
				subtree(m, func(d Match) {
					next = append(next, selectChildren(d, seg.Selectors)...)
				})
			} else {
				next = append(next, selectChildren(m, seg.Selectors)...)
			}
		}
		current = next
	}
	return current
}

// selectChildren returns the direct children of m matched by any selector.
// Each child is emitted at most once even when several selectors match it.
func selectChildren(m Match, sels []Selector) []Match {
	var out []Match
	switch node := m.Value.(type) {
	case *models.Object:
		for _, mem := range node.Members {
			for _, sel := range sels {
				if sel.Match(mem.Key, 0) {
					out = append(out, Match{Value: mem.Value, Path: m.Path.Child(models.Field(mem.Key))})
					break
				}
			}
		}
	case *models.Array:
		n := len(node.Elements)
		for i, el := range node.Elements {
			for _, sel := range sels {
				if sel.Match(i, n) {
					out = append(out, Match{Value: el, Path: m.Path.Child(models.Index(i))})
					break
				}
			}
		}
	}
	return out
}

// subtree visits m and every descendant of m in document order.
func subtree(m Match, fn func(Match)) {
	fn(m)
	switch node := m.Value.(type) {
	case *models.Object:
		for _, mem := range node.Members {
			subtree(Match{Value: mem.Value, Path: m.Path.Child(models.Field(mem.Key))}, fn)
		}
	case *models.Array:
		for i, el := range node.Elements {
			subtree(Match{Value: el, Path: m.Path.Child(models.Index(i))}, fn)
		}
	}
}
