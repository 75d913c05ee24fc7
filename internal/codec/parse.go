package codec

import (
	"errors"
	"regexp"
	"strings"

	"mindit-cli/internal/model"
	"mindit-cli/internal/mutate"
)

// DirectionSource picks the branch for nodes pasted directly under root.
type DirectionSource interface {
	NextDirection() model.Position
}

// FixedDirection always places root-level pastes on the same side.
type FixedDirection model.Position

func (d FixedDirection) NextDirection() model.Position { return model.Position(d) }

// Importer turns bulleted text into nodes under a live parent, registering every node with
// Persister as it goes.
type Importer struct {
	Persister  mutate.Persister
	Directions DirectionSource
}

var lineSplit = regexp.MustCompile(`\n\r|\n`)

// FromBulletedText parses text and attaches the result under parent. It returns the first
// node created at the top level of the pasted block, or nil when nothing was created.
//
// Siblings are created and published as one sequence update per level before any of their own
// children are parsed, so persistence sees a single "parent now has [ids...]" per level.
func (im Importer) FromBulletedText(text string, parent *model.Node) (*model.Node, error) {
	if text == "" || parent == nil {
		return nil, nil
	}
	header, err := im.populate(lineSplit.Split(text, -1), parent)
	if header != nil {
		header.Parent = parent
	}
	return header, err
}

type subBlock struct {
	node  *model.Node
	lines []string
}

func (im Importer) populate(lines []string, parent *model.Node) (*model.Node, error) {
	dir := model.PositionChild
	if model.IsRoot(parent) {
		dir = model.PositionRight
		if im.Directions != nil {
			dir = im.Directions.NextDirection()
		}
		dir = model.SequenceDirection(parent, dir)
	}

	siblings := append([]*model.Node(nil), *model.Sequence(parent, dir)...)
	var (
		header   *model.Node
		blocks   []*subBlock
		last     *subBlock
		expected = -1
	)
	var regErr error
	for _, line := range lines {
		depth, name := splitDepth(line)
		if expected < 0 {
			expected = depth
		}
		if depth > expected {
			// Lines before the first created node have no owner and are dropped.
			if last != nil {
				last.lines = append(last.lines, line)
			}
			continue
		}
		if name == "" {
			continue
		}
		n := model.NewNode(DecodeName(name), dir, parent)
		if err := mutate.Register(im.Persister, n); err != nil {
			regErr = err
			break
		}
		siblings = append(siblings, n)
		if header == nil {
			header = n
		}
		last = &subBlock{node: n}
		blocks = append(blocks, last)
	}
	if header == nil {
		return nil, regErr
	}

	// Nodes registered before a failure are still attached, so no stored row is left without a parent.
	if err := mutate.ReplaceChildSequence(im.Persister, parent, dir, siblings); err != nil {
		return header, errors.Join(regErr, err)
	}
	if regErr != nil {
		return header, regErr
	}
	for _, b := range blocks {
		if len(b.lines) == 0 {
			continue
		}
		if _, err := im.populate(b.lines, b.node); err != nil {
			return header, err
		}
	}
	return header, nil
}

// splitDepth counts leading tabs and returns the rest of the line as the encoded name.
// A trailing \r (CRLF input) is not part of the name.
func splitDepth(line string) (int, string) {
	line = strings.TrimSuffix(line, "\r")
	depth := 0
	for depth < len(line) && line[depth] == '\t' {
		depth++
	}
	return depth, line[depth:]
}
