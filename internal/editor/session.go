package editor

import (
	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
)

// Session holds the per-editor state that outlives a single keystroke.
// The zero value is ready to use.
type Session struct {
	lastDirection model.Position
	prevDepth     int
	source        *SourceNode
	pending       *pendingEdit
}

// SourceNode is what the last cut left behind for a later paste.
type SourceNode struct {
	ID        string
	Direction model.Position
	Text      string
}

type pendingEdit struct {
	node   *model.Node
	origin *model.Node
	// created is set when the node was just added and should be discarded if left unnamed.
	created bool
}

// NextDirection alternates root placement between right and left, starting with right.
func (s *Session) NextDirection() model.Position {
	if s.lastDirection == model.PositionRight {
		s.lastDirection = model.PositionLeft
	} else {
		s.lastDirection = model.PositionRight
	}
	return s.lastDirection
}

func (s *Session) PrevDepth() int { return s.prevDepth }

func (s *Session) SetPrevDepth(depth int) { s.prevDepth = depth }

// StoredSource returns the last cut node, if any.
func (s *Session) StoredSource() (SourceNode, bool) {
	if s.source == nil {
		return SourceNode{}, false
	}
	return *s.source, true
}

func (s *Session) storeSourceNode(n *model.Node) {
	s.source = &SourceNode{
		ID:        n.ID,
		Direction: CalculateDirection(n),
		Text:      codec.ToBulletedText(n, 0),
	}
}

// Editing returns the node currently in rename mode.
func (s *Session) Editing() (*model.Node, bool) {
	if s.pending == nil {
		return nil, false
	}
	return s.pending.node, true
}

// CalculateDirection returns the branch side of n (left/right), or root for the root node.
func CalculateDirection(n *model.Node) model.Position {
	return model.Branch(n)
}
