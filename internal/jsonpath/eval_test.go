package jsonpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasondoong/formiko/internal/models"
	jsonparser "github.com/jasondoong/formiko/internal/parser"
)

func mustDoc(t *testing.T, jsonStr string) models.Value {
	t.Helper()
	doc, err := jsonparser.ParseString(jsonStr)
	require.NoError(t, err)
	return doc
}

func matchPaths(matches []Match) []string {
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, m.Path.String())
	}
	return paths
}

func TestFind_Paths(t *testing.T) {
	doc := mustDoc(t, `{
		"a": {"b": 1, "d": {"b": 2}},
		"c": 2,
		"rows": [{"name": "x"}, {"name": "y"}, {"name": "z"}]
	}`)

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"root", "$", []string{""}},
		{"nested member", "$.a.b", []string{"a.b"}},
		{"bare form", "a.b", []string{"a.b"}},
		{"no match", "$.missing", []string{}},
		{"top level wildcard", "$.*", []string{"a", "c", "rows"}},
		{"array index", "$.rows[1]", []string{"rows.[1]"}},
		{"negative index", "$.rows[-1]", []string{"rows.[2]"}},
		{"index out of range", "$.rows[9]", []string{}},
		{"array wildcard", "$.rows[*].name", []string{"rows.[0].name", "rows.[1].name", "rows.[2].name"}},
		{"slice", "$.rows[0:2]", []string{"rows.[0]", "rows.[1]"}},
		{"slice step", "$.rows[::2]", []string{"rows.[0]", "rows.[2]"}},
		{"quoted member", "$['a']['b']", []string{"a.b"}},
		{"comma list keeps document order", "$['c', 'a']", []string{"a", "c"}},
		{"descendant", "$..b", []string{"a.b", "a.d.b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, matchPaths(e.Find(doc)))
		})
	}
}

func TestFind_RootMatchReturnsDocument(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	matches := MustCompile("$").Find(doc)
	require.Len(t, matches, 1)
	assert.Same(t, doc, matches[0].Value)
	assert.Empty(t, matches[0].Path)
}

func TestFind_MatchValues(t *testing.T) {
	doc := mustDoc(t, `{"a": {"b": 42}}`)
	matches := MustCompile("$.a.b").Find(doc)
	require.Len(t, matches, 1)
	assert.Equal(t, models.Number("42"), matches[0].Value)
}

func TestFind_DescendantWildcardVisitsEveryNode(t *testing.T) {
	doc := mustDoc(t, `{"a": {"b": 1}, "c": [true]}`)
	// "$..*" selects every node except the root itself. The wildcard is
	// applied to the root's children first, then to each descendant's.
	matches := MustCompile("$..*").Find(doc)
	assert.Equal(t, []string{"a", "c", "a.b", "c.[0]"}, matchPaths(matches))
}

func TestFind_SelectorOnScalarMatchesNothing(t *testing.T) {
	doc := mustDoc(t, `{"a": 1}`)
	assert.Empty(t, MustCompile("$.a.b").Find(doc))
	assert.Empty(t, MustCompile("$.a[0]").Find(doc))
}

func TestFind_OverlappingSelectorsEmitOnce(t *testing.T) {
	doc := mustDoc(t, `{"rows": [10, 20]}`)
	// Index 0 and the wildcard both hit element 0.
	matches := MustCompile("$.rows[0, *]").Find(doc)
	assert.Equal(t, []string{"rows.[0]", "rows.[1]"}, matchPaths(matches))
}
