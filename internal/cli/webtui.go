package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mindit-cli/internal/store"
	"mindit-cli/internal/webtui"

	"github.com/spf13/cobra"
)

func newWebTUICmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "webtui",
		Short: "Run the terminal editor in your browser (PTY + WebSocket, local use)",
		Long: strings.TrimSpace(`
Serve the interactive editor over the web via a server-side PTY and a browser terminal emulator.

Notes:
- There is no authentication: keep the default loopback address.
- Each browser tab starts its own editor subprocess on the same store.
`),
		Example: strings.TrimSpace(`
# Serve the current map on localhost
mindit webtui --addr 127.0.0.1:3334

# Serve a specific map
mindit --map "Trip plan" webtui
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := strings.TrimSpace(app.Dir)
			if dir == "" {
				d, err := store.DefaultDir()
				if err != nil {
					return writeErr(cmd, err)
				}
				dir = d
			}

			srv, err := webtui.NewServer(webtui.ServerConfig{
				Addr:   strings.TrimSpace(addr),
				Dir:    dir,
				MapRef: strings.TrimSpace(app.MapRef),
				Logger: app.logger(),
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := srv.Addr()
			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      listenAddr,
					"dir":       dir,
					"map":       strings.TrimSpace(app.MapRef),
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": []string{
					"open http://" + listenAddr,
				},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "mindit webtui running at http://%s\n", listenAddr)

			hs := &http.Server{Addr: listenAddr, Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = hs.Shutdown(ctx)
			}()
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3334", "Bind address (host:port or :port)")
	return cmd
}
