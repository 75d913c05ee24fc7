package editor

import "mindit-cli/internal/model"

// SelectionHandle is the current selection as seen by the view. It may be empty, or point at
// a view element that no longer has node data attached.
type SelectionHandle struct {
	node *model.Node
}

func Handle(n *model.Node) SelectionHandle {
	return SelectionHandle{node: n}
}

func (h SelectionHandle) Data() (*model.Node, bool) {
	return h.node, h.node != nil
}

// Selection is the view-side collaborator that owns which node is selected and edited.
type Selection interface {
	Selected() SelectionHandle
	SelectNode(n *model.Node)
	DeselectNode()
	MakeEditable(n *model.Node)
}

// Alerter shows a user-facing warning.
type Alerter interface {
	Alert(msg string)
}

// Clipboard carries copied nodes. HTML may be dropped by clipboards that only hold text.
type Clipboard interface {
	WriteText(text, html string) error
	ReadText() (string, error)
}
