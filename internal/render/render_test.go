package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasondoong/formiko/internal/models"
	"github.com/jasondoong/formiko/internal/parser"
)

func renderDoc(t *testing.T, r *Renderer, jsonStr string) string {
	t.Helper()
	doc, err := parser.ParseString(jsonStr)
	require.NoError(t, err)
	return r.Render(doc)
}

func TestRender_PageStructure(t *testing.T) {
	page := renderDoc(t, New(), `{"a": 1}`)

	assert.True(t, strings.HasPrefix(page, "<html><head><meta charset='utf-8'><style>"))
	assert.True(t, strings.HasSuffix(page, "</script></body></html>"))
	assert.Contains(t, page, "<pre>")
	// The fold stylesheet and click handler ride along in every page.
	assert.Contains(t, page, ".jblock.collapsed > .children")
	assert.Contains(t, page, "jtoggler")
}

func TestRender_NodeMarkup(t *testing.T) {
	page := renderDoc(t, New(), `{"name": "x", "n": 1.5, "ok": true, "nil": null, "arr": [2]}`)

	assert.Contains(t, page, `<span class="jkey">"name"</span>: `)
	assert.Contains(t, page, `<span class="jstr" data-jpath="name">"x"</span>`)
	assert.Contains(t, page, `<span class="jnum" data-jpath="n">1.5</span>`)
	assert.Contains(t, page, `<span class="jbool" data-jpath="ok">true</span>`)
	assert.Contains(t, page, `<span class="jnull" data-jpath="nil">null</span>`)
	assert.Contains(t, page, `<span class="jnum" data-jpath="arr.[0]">2</span>`)
}

func TestRender_ContainerPaths(t *testing.T) {
	page := renderDoc(t, New(), `{"a": {"b": []}}`)

	// Root at the empty path, nested containers at their canonical paths.
	assert.Contains(t, page, `<div class="jblock" data-jpath="">`)
	assert.Contains(t, page, `<div class="jblock" data-jpath="a">`)
	assert.Contains(t, page, `<div class="jblock" data-jpath="a.b">`)
}

func TestRender_EscapesHTML(t *testing.T) {
	page := renderDoc(t, New(), `{"<k>": "<script>alert(1)</script>"}`)

	assert.NotContains(t, page, "<script>alert")
	assert.Contains(t, page, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, page, `<span class="jkey">"&lt;k&gt;"</span>`)
}

func TestRender_CollapseThreshold(t *testing.T) {
	jsonStr := `{"a": {"b": 1}, "c": [2, 3]}`

	// Sorted-key dump of this document is 9 lines.
	doc, err := parser.ParseString(jsonStr)
	require.NoError(t, err)
	require.Equal(t, 9, models.LineCount(doc, models.EncodeOptions{Indent: 2, SortKeys: true}))

	small := &Renderer{TabWidth: 2, CollapseLines: 100}
	assert.NotContains(t, small.Render(doc), "jblock collapsed")

	large := &Renderer{TabWidth: 2, CollapseLines: 8}
	page := large.Render(doc)
	assert.Contains(t, page, `<div class="jblock collapsed" data-jpath="a">`)
	assert.Contains(t, page, `<div class="jblock collapsed" data-jpath="c">`)
	// The root stays open no matter how large the document is.
	assert.Contains(t, page, `<div class="jblock" data-jpath="">`)
}

func TestRender_ScalarRoot(t *testing.T) {
	page := renderDoc(t, New(), `"alone"`)
	assert.Contains(t, page, `<span class="jstr" data-jpath="">"alone"</span>`)
}

func TestRenderError(t *testing.T) {
	page := New().RenderError("syntax error at offset 3: <bad>")

	assert.Contains(t, page, `<div class="jerror">`)
	assert.Contains(t, page, "<h3>JSON parse error</h3>")
	assert.Contains(t, page, "syntax error at offset 3: &lt;bad&gt;")
	assert.NotContains(t, page, "<bad>")
}

func TestApplyScript_Ordering(t *testing.T) {
	script := ApplyScript([]string{"a.b"}, []string{"", "a", "a.b"})

	assert.Contains(t, script, `const highlights = ["a.b"];`)
	assert.Contains(t, script, `const expands = ["","a","a.b"];`)

	collapseAll := strings.Index(script, "classList.add('collapsed')")
	expand := strings.Index(script, "classList.remove('collapsed')")
	highlight := strings.Index(script, "classList.add('jhighlight')")
	require.NotEqual(t, -1, collapseAll)
	require.NotEqual(t, -1, expand)
	require.NotEqual(t, -1, highlight)
	assert.Less(t, collapseAll, expand, "collapse-all must run before the expand pass")
	assert.Less(t, expand, highlight, "expand pass must run before highlighting")
}

func TestApplyScript_NilSlices(t *testing.T) {
	script := ApplyScript(nil, nil)
	assert.Contains(t, script, "const highlights = [];")
	assert.Contains(t, script, "const expands = [];")
}

func TestResetScript(t *testing.T) {
	assert.Contains(t, ResetScript(), "classList.remove('collapsed')")
}
