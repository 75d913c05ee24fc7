package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"
)

func TestMarkdownStyle_RespectsTheme(t *testing.T) {
	t.Setenv("MINDIT_MD_STYLE", "")
	t.Setenv("COLORFGBG", "")

	t.Setenv("MINDIT_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	t.Setenv("MINDIT_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_OverrideWins(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("MINDIT_TUI_THEME", "light")
	t.Setenv("MINDIT_MD_STYLE", "plain")
	if got := markdownStyle(); got != "notty" {
		t.Fatalf("expected notty; got %q", got)
	}
}

func TestMarkdownStyle_COLORFGBG(t *testing.T) {
	t.Setenv("MINDIT_MD_STYLE", "")
	t.Setenv("MINDIT_TUI_THEME", "")
	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyleConfig_DropsDocumentMargin(t *testing.T) {
	cfg := markdownStyleConfig("dark")
	if cfg.Document.Margin == nil || *cfg.Document.Margin != 0 {
		t.Fatalf("expected zero margin")
	}
	if styles.DarkStyleConfig.Document.Margin != nil && *styles.DarkStyleConfig.Document.Margin == 0 {
		t.Fatalf("shared style config should not be mutated")
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Setenv("MINDIT_MD_STYLE", "plain")
	if got := RenderMarkdown("   ", 80); got != "" {
		t.Fatalf("blank input should render empty, got %q", got)
	}
	out := RenderMarkdown("# Plans\n\n- first\n  - nested\n", 80)
	for _, want := range []string{"Plans", "first", "nested"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
