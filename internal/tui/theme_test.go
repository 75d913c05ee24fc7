package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestApplyColorProfilePreference(t *testing.T) {
	old := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })

	t.Setenv("NO_COLOR", "1")
	applyColorProfilePreference("default")
	if got := lipgloss.ColorProfile(); got != termenv.Ascii {
		t.Fatalf("NO_COLOR should force ascii; got %v", got)
	}

	t.Setenv("NO_COLOR", "")
	applyColorProfilePreference("mono")
	if got := lipgloss.ColorProfile(); got != termenv.Ascii {
		t.Fatalf("mono should force ascii; got %v", got)
	}
}

func TestApplyThemePreference(t *testing.T) {
	old := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(old) })

	t.Setenv("MINDIT_TUI_THEME", "light")
	applyThemePreference()
	if lipgloss.HasDarkBackground() {
		t.Fatalf("light theme should clear dark background")
	}
	t.Setenv("MINDIT_TUI_THEME", "")
	t.Setenv("COLORFGBG", "15;0")
	applyThemePreference()
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("COLORFGBG bg=0 should mean dark")
	}
}

func TestTheme_LevelFallsBackToDeep(t *testing.T) {
	th := newTheme("default")
	if len(th.levels) != len(levelColors) {
		t.Fatalf("levels %d", len(th.levels))
	}
	if got := th.level(len(levelColors) + 3).Render("x"); got != th.deep.Render("x") {
		t.Fatalf("deep level %q", got)
	}
	if got := th.level(-1).Render("x"); got != th.deep.Render("x") {
		t.Fatalf("negative level %q", got)
	}
}
