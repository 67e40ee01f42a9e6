// Package render turns a parsed JSON document into a complete HTML preview
// page of nested, addressable container and leaf elements. Every node
// carries its canonical path in a data-jpath attribute; the embedded fold
// script and the apply script built by this package address nodes through
// that attribute, so the attribute format and the class names here are a
// wire format shared with the scripts, not free to change.
package render

import (
	_ "embed"
	"html"
	"strconv"
	"strings"

	"github.com/jasondoong/formiko/internal/models"
)

//go:embed assets/jsonfold.css
var foldCSS string

//go:embed assets/jsonfold.js
var foldJS string

// Defaults for the preview configuration.
const (
	DefaultTabWidth      = 2
	DefaultCollapseLines = 100
)

// Renderer produces HTML preview documents.
type Renderer struct {
	// TabWidth is the indentation width used for the line-count decision.
	TabWidth int
	// CollapseLines is the threshold above which every non-root container
	// starts collapsed.
	CollapseLines int
}

// New returns a Renderer with default settings.
func New() *Renderer {
	return &Renderer{TabWidth: DefaultTabWidth, CollapseLines: DefaultCollapseLines}
}

// Render produces the full HTML document for v. Whether containers start
// collapsed depends on a single decision: a sorted-key indented dump of the
// document longer than CollapseLines lines collapses every non-root
// container, a shorter one expands everything.
func (r *Renderer) Render(v models.Value) string {
	lines := models.LineCount(v, models.EncodeOptions{Indent: r.TabWidth, SortKeys: true})
	collapse := lines > r.CollapseLines

	var b strings.Builder
	b.WriteString("<html><head><meta charset='utf-8'><style>")
	b.WriteString(foldCSS)
	b.WriteString("</style></head><body><pre>")
	valueToHTML(&b, v, collapse, 0, models.Path{})
	b.WriteString("</pre><script>")
	b.WriteString(foldJS)
	b.WriteString("</script></body></html>")
	return b.String()
}

// RenderError produces the page shown in place of the preview when the
// document text is not valid JSON.
func (r *Renderer) RenderError(message string) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset='utf-8'><style>")
	b.WriteString(foldCSS)
	b.WriteString("</style></head><body><div class=\"jerror\"><h3>JSON parse error</h3><pre>")
	b.WriteString(html.EscapeString(message))
	b.WriteString("</pre></div></body></html>")
	return b.String()
}

func valueToHTML(b *strings.Builder, v models.Value, collapse bool, level int, path models.Path) {
	switch node := v.(type) {
	case *models.Object:
		openContainer(b, collapse, level, path)
		b.WriteByte('{')
		b.WriteString("<div class='children'>")
		for _, m := range node.Members {
			b.WriteString("<div class=\"jitem\"><span class=\"jkey\">\"")
			b.WriteString(html.EscapeString(m.Key))
			b.WriteString("\"</span>: ")
			valueToHTML(b, m.Value, collapse, level+1, path.Child(models.Field(m.Key)))
			b.WriteString("</div>")
		}
		b.WriteString("</div>}</div>")
	case *models.Array:
		openContainer(b, collapse, level, path)
		b.WriteByte('[')
		b.WriteString("<div class='children'>")
		for i, el := range node.Elements {
			b.WriteString("<div class=\"jitem\">")
			valueToHTML(b, el, collapse, level+1, path.Child(models.Index(i)))
			b.WriteString("</div>")
		}
		b.WriteString("</div>]</div>")
	case models.String:
		leaf(b, "jstr", path, "\""+html.EscapeString(string(node))+"\"")
	case models.Bool:
		leaf(b, "jbool", path, strconv.FormatBool(bool(node)))
	case models.Number:
		leaf(b, "jnum", path, html.EscapeString(string(node)))
	default:
		leaf(b, "jnull", path, "null")
	}
}

// openContainer writes the shared container prefix up to the opening brace.
// Only non-root containers honor the collapse decision, so a too-large
// document still shows its top level.
func openContainer(b *strings.Builder, collapse bool, level int, path models.Path) {
	b.WriteString("<div class=\"jblock")
	if collapse && level > 0 {
		b.WriteString(" collapsed")
	}
	b.WriteString("\" data-jpath=\"")
	b.WriteString(html.EscapeString(path.String()))
	b.WriteString("\"><span class='jtoggler'></span>")
}

func leaf(b *strings.Builder, class string, path models.Path, body string) {
	b.WriteString("<span class=\"")
	b.WriteString(class)
	b.WriteString("\" data-jpath=\"")
	b.WriteString(html.EscapeString(path.String()))
	b.WriteString("\">")
	b.WriteString(body)
	b.WriteString("</span>")
}
