package tui

import (
	"os"
	"strings"
)

// Glyphs can't change the user's font, so an ASCII set is offered for terminals that render
// the Unicode twisties badly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

func glyphPreference() glyphSet {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("MINDIT_TUI_GLYPHS")), "ascii") {
		return glyphSetASCII
	}
	return glyphSetUnicode
}

func (gs glyphSet) twisty(hasChildren, collapsed bool) string {
	switch {
	case !hasChildren:
		return " "
	case collapsed && gs == glyphSetASCII:
		return "+"
	case collapsed:
		return "▸"
	case gs == glyphSetASCII:
		return "-"
	default:
		return "▾"
	}
}

// side marks which branch a row belongs to.
func (gs glyphSet) side(left bool) string {
	switch {
	case left && gs == glyphSetASCII:
		return "<"
	case left:
		return "◂"
	case gs == glyphSetASCII:
		return ">"
	default:
		return "▸"
	}
}

func (gs glyphSet) hrule() string {
	if gs == glyphSetASCII {
		return "-"
	}
	return "─"
}
