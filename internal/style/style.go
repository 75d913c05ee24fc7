// Package style resolves node CSS classes to inline style strings, used when nodes are
// copied as HTML.
package style

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

//go:embed default.css
var defaultCSS string

type Sheet struct {
	rules []*css.Rule
}

// Parse parses CSS text. Only top-level qualified rules take part in lookups; at-rules
// (@media and friends) are ignored.
func Parse(src string) (*Sheet, error) {
	ss, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}
	s := &Sheet{}
	for _, r := range ss.Rules {
		if r.Kind == css.QualifiedRule {
			s.rules = append(s.rules, r)
		}
	}
	return s, nil
}

// Default returns the built-in sheet.
func Default() *Sheet {
	s, err := Parse(defaultCSS)
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads a sheet from path. An empty path returns the built-in sheet.
func Load(path string) (*Sheet, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(b))
}

// ComputeInlineStyle returns the declarations of the first rule with a selector naming
// .className, as "prop: value;" pairs separated by spaces. It returns "" when nothing matches.
func (s *Sheet) ComputeInlineStyle(className string) string {
	className = strings.TrimPrefix(strings.TrimSpace(className), ".")
	if s == nil || className == "" {
		return ""
	}
	for _, r := range s.rules {
		if !ruleHasClass(r, className) {
			continue
		}
		parts := make([]string, 0, len(r.Declarations))
		for _, d := range r.Declarations {
			decl := d.Property + ": " + d.Value
			if d.Important {
				decl += " !important"
			}
			parts = append(parts, decl+";")
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func ruleHasClass(r *css.Rule, className string) bool {
	for _, sel := range r.Selectors {
		if selectorHasClass(sel, className) {
			return true
		}
	}
	return false
}

// selectorHasClass reports whether sel contains .className as a whole class token,
// so ".level" does not match ".level-1".
func selectorHasClass(sel, className string) bool {
	needle := "." + className
	for i := 0; ; {
		j := strings.Index(sel[i:], needle)
		if j < 0 {
			return false
		}
		end := i + j + len(needle)
		if end == len(sel) || !isIdentByte(sel[end]) {
			return true
		}
		i = end
	}
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
