// Package codec converts between mind-map subtrees and the clipboard formats:
// tab-indented bulleted text (both ways) and an HTML bulleted list (export only).
package codec

import (
	"strings"

	"mindit-cli/internal/model"
)

const (
	// EmptyNameGlyph stands in for a node whose name is empty.
	EmptyNameGlyph = "§"
	// NewlineGlyph stands in for a line break inside a name, keeping one node per line.
	NewlineGlyph = "‡"
)

var newlineReplacer = strings.NewReplacer("\r\n", NewlineGlyph, "\n", NewlineGlyph, "\r", NewlineGlyph)

// ImmediateSubNodes is left ++ right for root and childSubTree for everything else.
func ImmediateSubNodes(n *model.Node) []*model.Node {
	return model.SubTree(n)
}

// ToBulletedText writes n and its subtree, one node per line, indented with depth tabs.
// A nil node yields "".
func ToBulletedText(n *model.Node, depth int) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	writeBulleted(&b, n, depth)
	return b.String()
}

func writeBulleted(b *strings.Builder, n *model.Node, depth int) {
	b.WriteString(strings.Repeat("\t", depth))
	b.WriteString(EncodeName(n.Name))
	for _, ch := range ImmediateSubNodes(n) {
		b.WriteByte('\n')
		writeBulleted(b, ch, depth+1)
	}
}

// PlainText renders each selected node as its own bulleted block.
func PlainText(nodes ...*model.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		if n == nil {
			continue
		}
		b.WriteString(ToBulletedText(n, 0))
		b.WriteByte('\n')
	}
	return strings.TrimRightFunc(b.String(), isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func EncodeName(name string) string {
	if name == "" {
		return EmptyNameGlyph
	}
	return newlineReplacer.Replace(name)
}

func DecodeName(s string) string {
	if s == EmptyNameGlyph {
		return ""
	}
	return strings.ReplaceAll(s, NewlineGlyph, "\n")
}
