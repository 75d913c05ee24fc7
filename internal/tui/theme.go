package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The editor must stay readable on light and dark terminals, so colors are adaptive and
// "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorWarning    lipgloss.TerminalColor = ac("160", "203")

	// One color per depth, matching the .level-N classes of the HTML export.
	levelColors = []lipgloss.TerminalColor{
		ac("232", "255"),
		ac("25", "75"),
		ac("28", "114"),
		ac("130", "180"),
	}
)

type theme struct {
	levels    []lipgloss.Style
	deep      lipgloss.Style
	selected  lipgloss.Style
	editing   lipgloss.Style
	muted     lipgloss.Style
	warning   lipgloss.Style
	header    lipgloss.Style
	statusBar lipgloss.Style
}

// newTheme builds styles for a profile: "default" or "mono".
func newTheme(profile string) theme {
	mono := strings.EqualFold(strings.TrimSpace(profile), "mono")
	t := theme{
		muted:     faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		header:    lipgloss.NewStyle().Bold(true),
		statusBar: faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
	}
	if mono {
		for range levelColors {
			t.levels = append(t.levels, lipgloss.NewStyle())
		}
		t.levels[0] = t.levels[0].Bold(true)
		t.deep = lipgloss.NewStyle()
		t.selected = lipgloss.NewStyle().Reverse(true)
		t.editing = lipgloss.NewStyle().Underline(true)
		t.warning = lipgloss.NewStyle().Bold(true)
		return t
	}
	for i, c := range levelColors {
		st := lipgloss.NewStyle().Foreground(c)
		if i == 0 {
			st = st.Bold(true)
		}
		t.levels = append(t.levels, st)
	}
	t.deep = lipgloss.NewStyle()
	t.selected = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	t.editing = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
	t.warning = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	return t
}

func (t theme) level(depth int) lipgloss.Style {
	if depth >= 0 && depth < len(t.levels) {
		return t.levels[depth]
	}
	return t.deep
}

// applyColorProfilePreference sets Lip Gloss's color profile for the editor.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable colors in a
// TUI by accident, so only NO_COLOR and the "mono" profile are honored on top of detection.
func applyColorProfilePreference(profile string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || strings.EqualFold(strings.TrimSpace(profile), "mono") {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	p := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if p != termenv.Ascii {
			p = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (p == termenv.Ascii || p == termenv.ANSI) {
		p = termenv.ANSI256
	}
	lipgloss.SetColorProfile(p)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) MINDIT_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("MINDIT_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
