package publish

import (
	"bytes"
	"strings"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`#`, `\#`,
	`<`, `\<`,
)

// MarkdownOutline renders n as a nested bullet list. Root becomes a heading with its branches
// listed below it, left branch first.
func MarkdownOutline(n *model.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if model.IsRoot(n) {
		buf.WriteString("# ")
		buf.WriteString(markdownLines(n.Name, ""))
		buf.WriteString("\n")
		children := model.SubTree(n)
		if len(children) > 0 {
			buf.WriteString("\n")
		}
		for _, ch := range children {
			writeBullet(&buf, ch, 0)
		}
		return buf.String()
	}
	writeBullet(&buf, n, 0)
	return buf.String()
}

func writeBullet(buf *bytes.Buffer, n *model.Node, level int) {
	indent := strings.Repeat("  ", level)
	buf.WriteString(indent)
	buf.WriteString("- ")
	buf.WriteString(markdownLines(n.Name, indent+"  "))
	buf.WriteString("\n")
	for _, ch := range model.SubTree(n) {
		writeBullet(buf, ch, level+1)
	}
}

// markdownLines escapes name and keeps embedded newlines as hard breaks aligned under the
// bullet text.
func markdownLines(name, cont string) string {
	if name == "" {
		return codec.EmptyNameGlyph
	}
	lines := strings.Split(strings.ReplaceAll(name, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = markdownEscaper.Replace(l)
	}
	return strings.Join(lines, "  \n"+cont)
}
