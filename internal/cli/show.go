package cli

import (
	"mindit-cli/internal/publish"
	"mindit-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var nodeID string
	var width int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the map as Markdown in the terminal",
		Args:  cobra.NoArgs,
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
			return writeText(cmd, tui.RenderMarkdown(publish.MarkdownOutline(n), width))
		},
	}
	cmd.Flags().StringVar(&nodeID, "node", "", "Show only this node's subtree")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	return cmd
}
