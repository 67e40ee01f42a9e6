package jsonpath

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Valid(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		segments int
	}{
		{"root only", "$", 0},
		{"rooted name", "$.a", 1},
		{"bare name", "a", 1},
		{"bare dotted", "a.b.c", 3},
		{"wildcard", "$.*", 1},
		{"bare wildcard", "*", 1},
		{"index", "$[0]", 1},
		{"negative index", "$[-1]", 1},
		{"quoted name", "$['first name']", 1},
		{"double quoted name", `$["a.b"]`, 1},
		{"comma list", "$['a', 'c']", 1},
		{"slice", "$[1:3]", 1},
		{"slice with step", "$[::2]", 1},
		{"descendant name", "$..b", 1},
		{"descendant wildcard", "$..*", 1},
		{"descendant bracket", "$..[0]", 1},
		{"mixed", "$.rows[0].name", 3},
		{"unicode name", "$.jméno", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Len(t, e.Segments, tt.segments)
			assert.Equal(t, tt.expr, e.Raw)
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"lone dot", "."},
		{"trailing dot", "$.a."},
		{"unclosed bracket", "$[0"},
		{"unclosed string", "$['a"},
		{"bad bracket content", "$[x]"},
		{"double dot at end", "$.a.."},
		{"bad escape", `$['a\q']`},
		{"space in bare name", "$.first name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.expr, pe.Expr)
		})
	}
}

func TestCompile_TooLong(t *testing.T) {
	_, err := Compile("$." + strings.Repeat("a", MaxExprLength))
	require.Error(t, err)
}

func TestCompile_QuotedNameUnescapes(t *testing.T) {
	e, err := Compile(`$['it\'s']`)
	require.NoError(t, err)
	require.Len(t, e.Segments, 1)
	sel, ok := e.Segments[0].Selectors[0].(NameSelector)
	require.True(t, ok)
	assert.Equal(t, "it's", sel.Name)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("$[") })
	assert.NotPanics(t, func() { MustCompile("$.a") })
}
