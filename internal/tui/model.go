package tui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/editor"
	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate"
	"mindit-cli/internal/search"
	"mindit-cli/internal/store"
)

type mode int

const (
	modeNavigate mode = iota
	modeRename
	modeFind
	modePreview
)

const maxFindResults = 8

// Options configures the editor.
type Options struct {
	// Profile is the appearance profile ("default", "mono").
	Profile string
	ShowIDs bool
	Style   codec.StyleLookup
	Logger  *slog.Logger
	// Clipboard overrides the OS clipboard.
	Clipboard editor.Clipboard
}

// persistedMsg carries a write confirmation from the persistence queue.
type persistedMsg store.Confirmation

type appModel struct {
	mapName    string
	root       *model.Node
	persister  mutate.Persister
	dispatcher *editor.Dispatcher
	sel        *selectionState
	log        *slog.Logger

	keys      keyMap
	help      help.Model
	input     textinput.Model
	findInput textinput.Model
	matches   []search.Match
	findIdx   int

	mode    mode
	theme   theme
	glyphs  glyphSet
	showIDs bool

	width  int
	height int
	offset int

	status    string
	statusErr bool
	failed    int
}

func newAppModel(mapName string, root *model.Node, p mutate.Persister, opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = &systemClipboard{}
	}
	sel := &selectionState{selected: root}
	d := editor.New(editor.Deps{
		Persister: p,
		Selection: sel,
		Alerter:   sel,
		Clipboard: clip,
		Style:     opts.Style,
		Logger:    log,
	})

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "name"
	in.CharLimit = 500

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "find node"
	fi.CharLimit = 200

	return appModel{
		mapName:    mapName,
		root:       root,
		persister:  p,
		dispatcher: d,
		sel:        sel,
		log:        log,
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      in,
		findInput:  fi,
		theme:      newTheme(opts.Profile),
		glyphs:     glyphPreference(),
		showIDs:    opts.ShowIDs,
		width:      80,
		height:     24,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case persistedMsg:
		if msg.Err != nil {
			m.failed++
			m.setStatus(fmt.Sprintf("save failed (%s %s): %v", msg.Op, msg.ID, msg.Err), true)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeRename:
			return m.updateRename(msg)
		case modeFind:
			return m.updateFind(msg)
		case modePreview:
			if msg.String() == "esc" || key.Matches(msg, m.keys.Preview) || key.Matches(msg, m.keys.Quit) {
				m.mode = modeNavigate
			}
			return m, nil
		default:
			return m.updateNavigate(msg)
		}
	}
	return m, nil
}

func (m appModel) updateNavigate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Find):
		m.mode = modeFind
		m.findInput.SetValue("")
		m.matches = nil
		m.findIdx = 0
		cmd := m.findInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Preview):
		if _, ok := m.sel.Selected().Data(); ok {
			m.mode = modePreview
		}
		return m, nil
	}

	k, ok := m.keys.editorKey(msg)
	if !ok {
		return m, nil
	}
	m.clearStatus()
	err := m.dispatcher.HandleKey(k)
	m.afterEdit(err)
	if n, editing := m.dispatcher.Session().Editing(); editing {
		cmd := m.startRename(n)
		return m, cmd
	}
	return m, nil
}

func (m *appModel) startRename(n *model.Node) tea.Cmd {
	m.mode = modeRename
	m.input.SetValue(n.Name)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m appModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		err := m.dispatcher.CommitRename(m.input.Value())
		m.endRename()
		m.afterEdit(err)
		return m, nil
	case tea.KeyEsc:
		err := m.dispatcher.Escape()
		m.endRename()
		m.afterEdit(err)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) endRename() {
	m.mode = modeNavigate
	m.input.Blur()
	m.input.SetValue("")
	m.sel.editing = nil
}

func (m appModel) updateFind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endFind()
		return m, nil
	case tea.KeyEnter:
		if m.findIdx < len(m.matches) {
			m.jumpTo(m.matches[m.findIdx].Node)
		}
		m.endFind()
		return m, nil
	case tea.KeyUp, tea.KeyCtrlP:
		if m.findIdx > 0 {
			m.findIdx--
		}
		return m, nil
	case tea.KeyDown, tea.KeyCtrlN:
		if m.findIdx+1 < len(m.matches) {
			m.findIdx++
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.findInput, cmd = m.findInput.Update(msg)
	m.matches = search.Find(m.root, m.findInput.Value(), maxFindResults)
	if m.findIdx >= len(m.matches) {
		m.findIdx = 0
	}
	return m, cmd
}

func (m *appModel) endFind() {
	m.mode = modeNavigate
	m.findInput.Blur()
	m.matches = nil
	m.findIdx = 0
}

// jumpTo selects n, expanding collapsed ancestors so it is visible.
func (m *appModel) jumpTo(n *model.Node) {
	var errs []error
	for a := n.Parent; a != nil; a = a.Parent {
		if a.IsCollapsed {
			if err := mutate.SetCollapsed(m.persister, a, false); err != nil {
				errs = append(errs, err)
			}
		}
	}
	m.sel.SelectNode(n)
	m.dispatcher.Session().SetPrevDepth(n.Depth)
	if len(errs) > 0 {
		m.afterEdit(errs[0])
		return
	}
	m.clampScroll()
}

func (m *appModel) afterEdit(err error) {
	if err != nil {
		m.log.Error("edit failed", "err", err)
		m.setStatus(err.Error(), true)
	} else if m.sel.alert != "" {
		m.setStatus(m.sel.alert, true)
	}
	m.sel.alert = ""
	m.clampScroll()
}

func (m *appModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *appModel) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// bodyHeight is the number of map rows that fit between the header and the footer.
func (m appModel) bodyHeight() int {
	h := m.height - 3 // header, status, help
	if m.help.ShowAll {
		h -= 4
	}
	if m.mode == modeFind {
		h -= 1 + maxFindResults
	}
	if h < 1 {
		h = 1
	}
	return h
}

// clampScroll keeps the selected row inside the visible window.
func (m *appModel) clampScroll() {
	rows := flattenMap(m.root)
	idx := rowIndex(rows, m.sel.selected)
	h := m.bodyHeight()
	if idx >= 0 {
		if idx < m.offset {
			m.offset = idx
		}
		if idx >= m.offset+h {
			m.offset = idx - h + 1
		}
	}
	if maxOff := len(rows) - h; m.offset > maxOff {
		m.offset = maxOff
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
