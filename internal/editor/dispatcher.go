// Package editor maps keystrokes to selection moves and structural edits on a mind map.
package editor

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate"
	"mindit-cli/internal/nav"
)

type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyTab
	KeyDelete
	KeySpace
	KeyCut
	KeyCopy
	KeyPaste
	KeyRename
	KeyEscape
)

var keyNames = map[Key]string{
	KeyUp: "up", KeyDown: "down", KeyLeft: "left", KeyRight: "right",
	KeyEnter: "enter", KeyTab: "tab", KeyDelete: "delete", KeySpace: "space",
	KeyCut: "cut", KeyCopy: "copy", KeyPaste: "paste", KeyRename: "rename", KeyEscape: "escape",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

// Handler computes the next selection for a node. A nil result leaves the selection alone.
type Handler func(n *model.Node, key Key) (*model.Node, error)

type Deps struct {
	Persister mutate.Persister
	Selection Selection
	Alerter   Alerter
	Clipboard Clipboard
	Style     codec.StyleLookup
	Session   *Session
	Logger    *slog.Logger
}

type Dispatcher struct {
	persister mutate.Persister
	selection Selection
	alerter   Alerter
	clipboard Clipboard
	style     codec.StyleLookup
	session   *Session
	log       *slog.Logger
}

func New(d Deps) *Dispatcher {
	if d.Session == nil {
		d.Session = &Session{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		persister: d.Persister,
		selection: d.Selection,
		alerter:   d.Alerter,
		clipboard: d.Clipboard,
		style:     d.Style,
		session:   d.Session,
		log:       d.Logger,
	}
}

func (d *Dispatcher) Session() *Session { return d.session }

// HandleKey runs the action bound to key against the current selection.
// Errors are persistence failures; the in-memory map has already changed when they occur.
func (d *Dispatcher) HandleKey(key Key) error {
	switch key {
	case KeyUp, KeyDown:
		return d.BindEventAction(d.performLogicalVerticalMovement, d.performLogicalVerticalMovement, key)
	case KeyLeft:
		return d.BindEventAction(d.handleCollapsing, d.parentForEventBinding, key)
	case KeyRight:
		return d.BindEventAction(d.parentForEventBinding, d.handleCollapsing, key)
	case KeyEnter:
		return d.newNodeAddAction(d.enterAction)
	case KeyTab:
		return d.newNodeAddAction(d.tabAction)
	case KeyDelete:
		return d.deleteAction()
	case KeySpace:
		return d.BindEventAction(d.toggleCollapsed, d.toggleCollapsed, key)
	case KeyCut:
		return d.Cut()
	case KeyCopy:
		return d.Copy()
	case KeyPaste:
		return d.Paste()
	case KeyRename:
		return d.BindEventAction(d.renameAction, d.renameAction, key)
	case KeyEscape:
		return d.Escape()
	default:
		return nil
	}
}

// beforeBindEventAction returns the selected node, or false when there is no selection or
// the selection carries no node data.
func (d *Dispatcher) beforeBindEventAction() (*model.Node, bool) {
	if d.selection == nil {
		return nil, false
	}
	return d.selection.Selected().Data()
}

// BindEventAction runs leftSide for nodes on the left branch and rightSide for everything
// else, then selects the node the handler returns.
func (d *Dispatcher) BindEventAction(leftSide, rightSide Handler, key Key) error {
	n, ok := d.beforeBindEventAction()
	if !ok {
		d.log.Debug("key ignored without selection", "key", key.String())
		return nil
	}
	h := rightSide
	if CalculateDirection(n) == model.PositionLeft {
		h = leftSide
	}
	next, err := h(n, key)
	if next != nil {
		d.afterBindEventAction(next)
	}
	return err
}

func (d *Dispatcher) afterBindEventAction(n *model.Node) {
	d.selection.SelectNode(n)
	d.session.SetPrevDepth(n.Depth)
}

func navKey(k Key) nav.Key {
	switch k {
	case KeyUp:
		return nav.KeyUp
	case KeyDown:
		return nav.KeyDown
	case KeyLeft:
		return nav.KeyLeft
	default:
		return nav.KeyRight
	}
}

func (d *Dispatcher) performLogicalVerticalMovement(n *model.Node, key Key) (*model.Node, error) {
	target := d.session.PrevDepth()
	if target < n.Depth {
		target = n.Depth
	}
	return nav.VerticalMove(n, navKey(key), target), nil
}

func (d *Dispatcher) parentForEventBinding(n *model.Node, key Key) (*model.Node, error) {
	if model.IsRoot(n) {
		return d.handleCollapsing(n, key)
	}
	return nav.ParentForEventBinding(n), nil
}

func (d *Dispatcher) handleCollapsing(n *model.Node, key Key) (*model.Node, error) {
	target, expand := nav.Horizontal(n, navKey(key))
	if !expand {
		return target, nil
	}
	err := mutate.SetCollapsed(d.persister, target, false)
	if children := model.SubTree(target); len(children) > 0 && !model.IsRoot(target) {
		return children[0], err
	}
	return target, err
}

func (d *Dispatcher) toggleCollapsed(n *model.Node, _ Key) (*model.Node, error) {
	if !model.HasChildren(n) && !n.IsCollapsed {
		return nil, nil
	}
	return nil, mutate.SetCollapsed(d.persister, n, !n.IsCollapsed)
}

func (d *Dispatcher) renameAction(n *model.Node, _ Key) (*model.Node, error) {
	d.session.pending = &pendingEdit{node: n, origin: n}
	d.selection.MakeEditable(n)
	return nil, nil
}

// newNodeAddAction creates a node with action and puts it in rename mode.
func (d *Dispatcher) newNodeAddAction(action func(*model.Node) (*model.Node, error)) error {
	n, ok := d.beforeBindEventAction()
	if !ok {
		return nil
	}
	created, err := action(n)
	if created == nil {
		return err
	}
	d.afterNewNodeAddition(created, n)
	return err
}

// enterAction adds an empty sibling right after n. On root there is no sibling to add, so it
// adds a child instead.
func (d *Dispatcher) enterAction(n *model.Node) (*model.Node, error) {
	parent := n.Parent
	if model.IsRoot(n) || parent == nil {
		return d.tabAction(n)
	}
	pos := model.PositionChild
	if model.IsRoot(parent) {
		pos = CalculateDirection(n)
	}
	created := model.NewNode("", pos, parent)
	idx := model.IndexOf(model.Siblings(n), n) + 1
	if err := mutate.AddChild(d.persister, parent, created, idx); err != nil {
		if created.ID == "" {
			return nil, err
		}
		return created, err
	}
	return created, nil
}

// tabAction adds an empty first child to n. Children of root go to the next side from the
// session's toggle.
func (d *Dispatcher) tabAction(n *model.Node) (*model.Node, error) {
	pos := model.PositionChild
	if model.IsRoot(n) {
		pos = d.session.NextDirection()
	}
	var errs []error
	if n.IsCollapsed {
		errs = append(errs, mutate.SetCollapsed(d.persister, n, false))
	}
	created := model.NewNode("", pos, n)
	if err := mutate.AddChild(d.persister, n, created, 0); err != nil {
		errs = append(errs, err)
		if created.ID == "" {
			return nil, errors.Join(errs...)
		}
	}
	return created, errors.Join(errs...)
}

func (d *Dispatcher) afterNewNodeAddition(created, origin *model.Node) {
	d.selection.DeselectNode()
	d.afterBindEventAction(created)
	d.selection.MakeEditable(created)
	d.session.pending = &pendingEdit{node: created, origin: origin, created: true}
}

// CommitRename ends rename mode, storing name on the node being edited.
func (d *Dispatcher) CommitRename(name string) error {
	p := d.session.pending
	if p == nil {
		return nil
	}
	d.session.pending = nil
	d.afterBindEventAction(p.node)
	return mutate.Rename(d.persister, p.node, name)
}

// Escape leaves rename mode. A node created by enter/tab that is still unnamed is removed
// again and the selection returns to where it was before the create.
func (d *Dispatcher) Escape() error {
	p := d.session.pending
	if p == nil {
		return nil
	}
	d.session.pending = nil
	if !p.created || p.node.Name != "" {
		d.afterBindEventAction(p.node)
		return nil
	}
	err := mutate.Delete(d.persister, p.node)
	d.selection.DeselectNode()
	if p.origin != nil {
		d.afterBindEventAction(p.origin)
	}
	return err
}

func (d *Dispatcher) deleteAction() error {
	n, ok := d.beforeBindEventAction()
	if !ok {
		return nil
	}
	return d.deleteNode(n, "delete")
}

func (d *Dispatcher) deleteNode(n *model.Node, op string) error {
	if model.IsRoot(n) {
		d.warn(mutate.InvalidOperationError{Op: op, NodeID: n.ID})
		return nil
	}
	focus := nav.FocusAfterDelete(n)
	err := mutate.Delete(d.persister, n)
	var inv mutate.InvalidOperationError
	if errors.As(err, &inv) {
		d.warn(inv)
		return nil
	}
	if d.session.pending != nil && d.session.pending.node == n {
		d.session.pending = nil
	}
	if focus != nil {
		d.afterBindEventAction(focus)
	}
	return err
}

func (d *Dispatcher) warn(err error) {
	d.log.Info("operation refused", "err", err)
	if d.alerter != nil {
		d.alerter.Alert(err.Error())
	}
}

// Cut remembers the selected node for a later paste, copies it and deletes it.
func (d *Dispatcher) Cut() error {
	n, ok := d.beforeBindEventAction()
	if !ok {
		return nil
	}
	if model.IsRoot(n) {
		d.warn(mutate.InvalidOperationError{Op: "cut", NodeID: n.ID})
		return nil
	}
	d.session.storeSourceNode(n)
	var errs []error
	if d.clipboard != nil {
		errs = append(errs, d.clipboard.WriteText(codec.PlainText(n), codec.HTML(d.style, n)))
	}
	errs = append(errs, d.deleteNode(n, "cut"))
	return errors.Join(errs...)
}

// Copy puts the selected node on the clipboard as bulleted text and HTML.
func (d *Dispatcher) Copy() error {
	n, ok := d.beforeBindEventAction()
	if !ok || d.clipboard == nil {
		return nil
	}
	return d.clipboard.WriteText(codec.PlainText(n), codec.HTML(d.style, n))
}

// Paste parses the clipboard (or, without one, the last cut) under the selected node and
// selects the first pasted node.
func (d *Dispatcher) Paste() error {
	n, ok := d.beforeBindEventAction()
	if !ok {
		return nil
	}
	text := ""
	if d.clipboard != nil {
		t, err := d.clipboard.ReadText()
		if err != nil {
			d.log.Warn("clipboard read failed", "err", err)
		}
		text = t
	}
	var dirs codec.DirectionSource = d.session
	if src, ok := d.session.StoredSource(); ok {
		if text == "" {
			text = src.Text
		}
		// Moving the last cut back under root keeps the side it was cut from.
		if sameBulleted(text, src.Text) && (src.Direction == model.PositionLeft || src.Direction == model.PositionRight) {
			dirs = codec.FixedDirection(src.Direction)
		}
	}
	return d.pasteText(n, text, dirs)
}

func sameBulleted(a, b string) bool {
	return strings.TrimRight(a, "\r\n") == strings.TrimRight(b, "\r\n")
}

// PasteText imports bulleted text under parent and selects the result.
func (d *Dispatcher) PasteText(parent *model.Node, text string) error {
	return d.pasteText(parent, text, d.session)
}

func (d *Dispatcher) pasteText(parent *model.Node, text string, dirs codec.DirectionSource) error {
	if parent == nil || text == "" {
		return nil
	}
	var errs []error
	if parent.IsCollapsed {
		errs = append(errs, mutate.SetCollapsed(d.persister, parent, false))
	}
	im := codec.Importer{Persister: d.persister, Directions: dirs}
	header, err := im.FromBulletedText(text, parent)
	errs = append(errs, err)
	if header != nil && model.IndexOf(model.Siblings(header), header) >= 0 {
		d.afterBindEventAction(header)
	}
	return errors.Join(errs...)
}
