package codec

import (
	"strconv"
	"strings"

	"mindit-cli/internal/model"

	"golang.org/x/net/html"
)

// StyleLookup resolves a CSS class name to an inline style string ("" when unknown).
type StyleLookup interface {
	ComputeInlineStyle(className string) string
}

// StyleFunc adapts a plain function to StyleLookup.
type StyleFunc func(className string) string

func (f StyleFunc) ComputeInlineStyle(className string) string { return f(className) }

// listStyleTypes is indexed by list nesting level; levels past the end reuse the last entry.
var listStyleTypes = []string{"circle", "disc", "square"}

// ClassName is the CSS class a node is rendered with at depth.
func ClassName(depth int) string {
	if depth >= 0 && depth <= 3 {
		return "level-" + strconv.Itoa(depth)
	}
	return "level"
}

// HTML renders the selected nodes as inline-styled spans followed by nested bulleted lists.
// Names are HTML-escaped. An empty selection yields "".
func HTML(style StyleLookup, nodes ...*model.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		if n == nil {
			continue
		}
		writeHTML(&b, style, n, 0)
	}
	return b.String()
}

func writeHTML(b *strings.Builder, style StyleLookup, n *model.Node, level int) {
	inline := ""
	if style != nil {
		inline = style.ComputeInlineStyle(ClassName(n.Depth))
	}
	b.WriteString("<span style='")
	b.WriteString(html.EscapeString(inline))
	b.WriteString("'>")
	b.WriteString(html.EscapeString(n.Name))
	b.WriteString("</span>")

	children := ImmediateSubNodes(n)
	if len(children) == 0 {
		return
	}
	b.WriteString("<ul list-style-type='")
	b.WriteString(listStyleType(level))
	b.WriteString("'>")
	for _, ch := range children {
		b.WriteString("<li>")
		writeHTML(b, style, ch, level+1)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
}

func listStyleType(level int) string {
	if level >= len(listStyleTypes) {
		return listStyleTypes[len(listStyleTypes)-1]
	}
	return listStyleTypes[level]
}
