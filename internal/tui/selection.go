package tui

import (
	"mindit-cli/internal/editor"
	"mindit-cli/internal/model"
)

// selectionState is the view side of the editor: which node is selected, which one is being
// renamed and the last warning to show. It is shared by pointer between the dispatcher and
// the bubbletea model.
type selectionState struct {
	selected *model.Node
	editing  *model.Node
	alert    string
}

func (s *selectionState) Selected() editor.SelectionHandle { return editor.Handle(s.selected) }

func (s *selectionState) SelectNode(n *model.Node) { s.selected = n }

func (s *selectionState) DeselectNode() {
	s.selected = nil
	s.editing = nil
}

func (s *selectionState) MakeEditable(n *model.Node) { s.editing = n }

func (s *selectionState) Alert(msg string) { s.alert = msg }
