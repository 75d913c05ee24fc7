package tui

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"mindit-cli/internal/editor"
)

// systemClipboard carries copied nodes through the OS clipboard. Terminals only exchange plain
// text, so the HTML rendition is not kept. When no clipboard tool is available the text stays in
// memory for this session.
type systemClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *systemClipboard) WriteText(text, _ string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	if clipboard.Unsupported {
		return nil
	}
	return clipboard.WriteAll(strings.ReplaceAll(text, "\r\n", "\n"))
}

func (c *systemClipboard) ReadText() (string, error) {
	if !clipboard.Unsupported {
		s, err := clipboard.ReadAll()
		if err == nil && s != "" {
			return s, nil
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// memoryClipboard never touches the OS clipboard. Used in tests and with --no-clipboard.
type memoryClipboard struct {
	text string
}

func (c *memoryClipboard) WriteText(text, _ string) error {
	c.text = text
	return nil
}

func (c *memoryClipboard) ReadText() (string, error) { return c.text, nil }

// NewMemoryClipboard returns a clipboard that stays inside the process.
func NewMemoryClipboard() editor.Clipboard { return &memoryClipboard{} }
