package tui

import "testing"

func TestGlyphPreference_FromEnv(t *testing.T) {
	t.Setenv("MINDIT_TUI_GLYPHS", "")
	if got := glyphPreference(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}
	t.Setenv("MINDIT_TUI_GLYPHS", "ASCII")
	if got := glyphPreference(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs; got %v", got)
	}
	t.Setenv("MINDIT_TUI_GLYPHS", "bogus")
	if got := glyphPreference(); got != glyphSetUnicode {
		t.Fatalf("unknown value should fall back to unicode; got %v", got)
	}
}

func TestGlyphSet_Twisty(t *testing.T) {
	cases := []struct {
		gs                     glyphSet
		hasChildren, collapsed bool
		want                   string
	}{
		{glyphSetUnicode, false, false, " "},
		{glyphSetUnicode, true, false, "▾"},
		{glyphSetUnicode, true, true, "▸"},
		{glyphSetASCII, true, false, "-"},
		{glyphSetASCII, true, true, "+"},
		{glyphSetASCII, false, true, " "},
	}
	for _, tc := range cases {
		if got := tc.gs.twisty(tc.hasChildren, tc.collapsed); got != tc.want {
			t.Fatalf("twisty(%v,%v) on %v = %q want %q", tc.hasChildren, tc.collapsed, tc.gs, got, tc.want)
		}
	}
	if glyphSetASCII.side(true) != "<" || glyphSetASCII.side(false) != ">" {
		t.Fatalf("ascii side glyphs")
	}
}
