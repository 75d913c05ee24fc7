// Package publish renders a mind map to files.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
)

type WriteOptions struct {
	Overwrite bool
	// Style resolves inline styles for the HTML file. Nil writes unstyled spans.
	Style codec.StyleLookup
}

type WriteResult struct {
	Written []string `json:"written"`
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileBase turns a map name into a file name stem.
func FileBase(name string) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(strings.TrimSpace(name), "-"), "-.")
	if base == "" {
		return "map"
	}
	return strings.ToLower(base)
}

// WriteMap writes root under toDir as <base>.txt (bulleted text), <base>.md, <base>.html (the
// styled list fragment that copy puts on the clipboard) and <base>.page.html (a standalone page).
func WriteMap(root *model.Node, toDir string, opt WriteOptions) (WriteResult, error) {
	if root == nil {
		return WriteResult{}, errors.New("missing map")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	page, err := Page(root)
	if err != nil {
		return WriteResult{}, err
	}
	base := FileBase(root.Name)
	files := []struct {
		ext  string
		body string
	}{
		{".txt", codec.PlainText(root) + "\n"},
		{".md", MarkdownOutline(root)},
		{".html", codec.HTML(opt.Style, root) + "\n"},
		{".page.html", page},
	}
	var written []string
	for _, f := range files {
		p := filepath.Join(toDir, base+f.ext)
		if err := writeFile(p, []byte(f.body), opt.Overwrite); err != nil {
			return WriteResult{Written: written}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
