package cli

import (
	"strings"

	"mindit-cli/internal/docs"
	"mindit-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Built-in help topics (keys, text-format, commands)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": docs.Topics()})
			}
			body, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("topic", args[0]+" (available: "+strings.Join(docs.Topics(), ", ")+")"))
			}
			if raw {
				return writeText(cmd, body)
			}
			return writeText(cmd, tui.RenderMarkdown(body, width))
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the Markdown source")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")
	return cmd
}
