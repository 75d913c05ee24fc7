package cli

import (
	"strings"

	"mindit-cli/internal/codec"
	"mindit-cli/internal/model"
	"mindit-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var as string
	var nodeID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the map (or a subtree) as bulleted text, HTML or Markdown",
		Long: strings.TrimSpace(`
Export ignores collapse state: collapsed subtrees are always written out.

Formats:
  text      tab-indented bulleted text (round-trips through "mindit import")
  html      nested <span>/<ul> list styled from the stylesheet
  markdown  nested bullet list with the root as a heading
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, root, err := openMap(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer db.Close()
			n, err := findNode(root, nodeID)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := renderExport(n, as)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeText(cmd, out)
		},
	}
	cmd.Flags().StringVar(&as, "as", "text", "Export format (text|html|markdown)")
	cmd.Flags().StringVar(&nodeID, "node", "", "Export only this node's subtree (default: whole map)")
	return cmd
}

func renderExport(n *model.Node, as string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(as)) {
	case "", "text", "txt":
		return codec.PlainText(n), nil
	case "html":
		sh, err := loadStyle()
		if err != nil {
			return "", err
		}
		return codec.HTML(sh, n), nil
	case "markdown", "md":
		return publish.MarkdownOutline(n), nil
	default:
		return "", usageError{flag: "as", msg: "expected text, html or markdown; got " + as}
	}
}
