package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
	"mindit-cli/internal/publish"
)

func (m appModel) View() string {
	if m.mode == modePreview {
		return m.previewView()
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteByte('\n')

	rows := flattenMap(m.root)
	h := m.bodyHeight()
	end := m.offset + h
	if end > len(rows) {
		end = len(rows)
	}
	shown := 0
	for i := m.offset; i < end; i++ {
		b.WriteString(m.rowLine(rows[i]))
		b.WriteByte('\n')
		shown++
	}
	for ; shown < h; shown++ {
		b.WriteByte('\n')
	}

	if m.mode == modeFind {
		b.WriteString(m.findPanel())
	}

	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m appModel) headerLine() string {
	title := m.theme.header.Render(truncateText(m.mapName, m.width))
	w := m.width - xansi.StringWidth(title) - 1
	if w <= 0 {
		return title
	}
	return title + " " + m.theme.muted.Render(strings.Repeat(m.glyphs.hrule(), w))
}

func (m appModel) rowLine(r mapRow) string {
	var prefix strings.Builder
	if r.depth > 0 {
		prefix.WriteString(strings.Repeat("  ", r.depth-1))
		if r.depth == 1 {
			prefix.WriteString(m.glyphs.side(r.side == model.PositionLeft))
		} else {
			prefix.WriteString(" ")
		}
		prefix.WriteString(" ")
	}
	prefix.WriteString(m.glyphs.twisty(r.hasChildren, r.collapsed))
	prefix.WriteString(" ")
	pre := prefix.String()

	if m.mode == modeRename && r.node == m.sel.editing {
		return pre + m.theme.editing.Render(m.input.View())
	}

	var suffix string
	if m.showIDs {
		suffix = " " + m.theme.muted.Render(r.node.ID)
	}
	avail := m.width - xansi.StringWidth(pre) - xansi.StringWidth(suffix)
	name := truncateText(codec.EncodeName(r.node.Name), avail)

	st := m.theme.level(r.depth)
	if r.node == m.sel.selected {
		st = m.theme.selected
	}
	return pre + st.Render(name) + suffix
}

func (m appModel) findPanel() string {
	var b strings.Builder
	b.WriteString(m.findInput.View())
	b.WriteByte('\n')
	for i := 0; i < maxFindResults; i++ {
		if i < len(m.matches) {
			line := truncateText(strings.Join(m.matches[i].Path, " / "), m.width-2)
			if i == m.findIdx {
				line = m.theme.selected.Render(line)
			}
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m appModel) statusLine() string {
	if m.status != "" {
		st := m.theme.statusBar
		if m.statusErr {
			st = m.theme.warning
		}
		return st.Render(truncateText(m.status, m.width))
	}
	rows := flattenMap(m.root)
	n := 0
	model.Walk(m.root, func(*model.Node) bool { n++; return true })
	s := fmt.Sprintf("%d nodes, %d shown", n, len(rows))
	if m.failed > 0 {
		s += fmt.Sprintf(", %d unsaved", m.failed)
	}
	return m.theme.statusBar.Render(s)
}

func (m appModel) previewView() string {
	sel := m.sel.selected
	if sel == nil {
		sel = m.root
	}
	body := RenderMarkdown(publish.MarkdownOutline(sel), m.width)
	hint := m.theme.muted.Render("esc/p: back")
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if max := m.height - 1; max > 0 && len(lines) > max {
		lines = lines[:max]
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), hint)
}

// truncateText cuts s to w display cells, marking the cut with an ellipsis.
func truncateText(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}
