package preview

import (
	"sort"
	"strings"

	"github.com/jasondoong/formiko/internal/errors"
	"github.com/jasondoong/formiko/internal/jsonpath"
	"github.com/jasondoong/formiko/internal/models"
)

// FilterResult is the visual state computed for one filter request.
type FilterResult struct {
	// Expression is the effective expression: trimmed input, or "" when the
	// request cleared filtering.
	Expression string
	// Highlights holds the path of every matched node in evaluator order.
	Highlights []string
	// Expands holds the path of every node that must render open.
	Expands map[string]struct{}
}

// MatchCount returns the number of matched nodes.
func (r *FilterResult) MatchCount() int { return len(r.Highlights) }

// ExpandPaths returns the expand set as a sorted slice, for handing to the
// apply script and for deterministic tests.
func (r *FilterResult) ExpandPaths() []string {
	out := make([]string, 0, len(r.Expands))
	for p := range r.Expands {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Filter computes the visual state for expression against doc. It is a pure
// function with three outcomes:
//
//   - empty or whitespace-only expression: filtering is cleared, every node
//     expands, nothing highlights;
//   - expression matches nothing: only the root stays open, signaling "no
//     results" without erroring;
//   - N matches: each match highlights, and every ancestor chain from match
//     to root expands, so exactly the branches holding matches are open.
//
// A malformed expression returns a query error and no result; the caller's
// previous state is untouched.
func Filter(doc models.Value, expression string) (*FilterResult, error) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return &FilterResult{
			Expression: "",
			Highlights: []string{},
			Expands:    allPaths(doc),
		}, nil
	}

	expr, err := jsonpath.Compile(trimmed)
	if err != nil {
		return nil, errors.NewQueryError(err.Error(), err)
	}

	res := &FilterResult{
		Expression: trimmed,
		Highlights: []string{},
		Expands:    map[string]struct{}{"": {}},
	}
	for _, m := range expr.Find(doc) {
		res.Highlights = append(res.Highlights, m.Path.String())
		for p := m.Path; ; p = p.Parent() {
			res.Expands[p.String()] = struct{}{}
			if len(p) == 0 {
				break
			}
		}
	}
	return res, nil
}

// resetState is the result presented after a failed filter: the full
// document, fully expanded, nothing highlighted.
func resetState(doc models.Value) *FilterResult {
	return &FilterResult{
		Expression: "",
		Highlights: []string{},
		Expands:    allPaths(doc),
	}
}

// allPaths collects the path of every node in the document, the empty root
// path included.
func allPaths(doc models.Value) map[string]struct{} {
	paths := make(map[string]struct{})
	models.Walk(doc, func(p models.Path, _ models.Value) bool {
		paths[p.String()] = struct{}{}
		return true
	})
	return paths
}
