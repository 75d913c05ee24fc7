package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"mindit-cli/internal/model"
	"mindit-cli/internal/store"
)

// Run opens the interactive editor on mm. Edits are applied to the in-memory tree at once and
// written to db in order by a background queue; failed writes are shown in the status line.
func Run(ctx context.Context, db *store.DB, mm model.MindMap, opts Options) error {
	root, err := db.LoadTree(ctx, mm.ID)
	if err != nil {
		return fmt.Errorf("load map %q: %w", mm.Name, err)
	}
	applyThemePreference()
	applyColorProfilePreference(opts.Profile)

	var prog *tea.Program
	ready := make(chan struct{})
	q := db.NewMapQueue(ctx, mm.ID, func(c store.Confirmation) {
		<-ready
		prog.Send(persistedMsg(c))
	}, opts.Logger)

	m := newAppModel(mm.Name, root, q, opts)
	prog = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	close(ready)
	_, runErr := prog.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}
	return errors.Join(runErr, q.Close())
}
