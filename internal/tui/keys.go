package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mindit-cli/internal/editor"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Tab     key.Binding
	Delete  key.Binding
	Toggle  key.Binding
	Cut     key.Binding
	Copy    key.Binding
	Paste   key.Binding
	Rename  key.Binding
	Find    key.Binding
	Preview key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add sibling")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "add child")),
		Delete:  key.NewBinding(key.WithKeys("delete", "x"), key.WithHelp("del/x", "delete")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "collapse")),
		Cut:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Copy:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Paste:   key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Rename:  key.NewBinding(key.WithKeys("f2", "e"), key.WithHelp("f2/e", "rename")),
		Find:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Tab, k.Rename, k.Delete, k.Find, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Enter, k.Tab, k.Rename, k.Delete, k.Toggle},
		{k.Cut, k.Copy, k.Paste},
		{k.Find, k.Preview, k.Help, k.Quit},
	}
}

// editorKey maps a keystroke in navigation mode to an editor action.
func (k keyMap) editorKey(msg tea.KeyMsg) (editor.Key, bool) {
	bindings := []struct {
		b   key.Binding
		key editor.Key
	}{
		{k.Up, editor.KeyUp},
		{k.Down, editor.KeyDown},
		{k.Left, editor.KeyLeft},
		{k.Right, editor.KeyRight},
		{k.Enter, editor.KeyEnter},
		{k.Tab, editor.KeyTab},
		{k.Delete, editor.KeyDelete},
		{k.Toggle, editor.KeySpace},
		{k.Cut, editor.KeyCut},
		{k.Copy, editor.KeyCopy},
		{k.Paste, editor.KeyPaste},
		{k.Rename, editor.KeyRename},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.b) {
			return b.key, true
		}
	}
	return 0, false
}
