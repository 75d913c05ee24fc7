package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write writes command output in the requested format.
//
// Supported formats:
// - json (default)
// - text: strings and fmt.Stringer values are written as-is, anything else falls back to JSON
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		switch s := v.(type) {
		case string:
			return writeLine(w, s)
		case fmt.Stringer:
			return writeLine(w, s.String())
		default:
			return WriteJSON(w, v, pretty)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeLine(w io.Writer, s string) error {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		_, err := io.WriteString(w, s)
		return err
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
