package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mindit-cli/internal/editor"
)

func TestEditorKey(t *testing.T) {
	k := defaultKeyMap()
	cases := []struct {
		msg  tea.KeyMsg
		want editor.Key
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, editor.KeyUp},
		{runes("j"), editor.KeyDown},
		{runes("h"), editor.KeyLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, editor.KeyRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, editor.KeyEnter},
		{tea.KeyMsg{Type: tea.KeyTab}, editor.KeyTab},
		{tea.KeyMsg{Type: tea.KeyDelete}, editor.KeyDelete},
		{runes("x"), editor.KeyDelete},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, editor.KeySpace},
		{tea.KeyMsg{Type: tea.KeyCtrlX}, editor.KeyCut},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, editor.KeyCopy},
		{tea.KeyMsg{Type: tea.KeyCtrlV}, editor.KeyPaste},
		{tea.KeyMsg{Type: tea.KeyF2}, editor.KeyRename},
	}
	for _, tc := range cases {
		got, ok := k.editorKey(tc.msg)
		if !ok || got != tc.want {
			t.Fatalf("%q: got %v,%v want %v", tc.msg.String(), got, ok, tc.want)
		}
	}
	if _, ok := k.editorKey(runes("z")); ok {
		t.Fatalf("unbound key should not map")
	}
}
