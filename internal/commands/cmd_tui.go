package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/tui"
	"github.com/sharo-jef/checklist-sub001/pkg/utils"
)

type TuiCmd struct {
	flags *Flags
	app   *App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Run executes the TUI. Exported for use as the default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	// Anything the user must see waits in a buffer until the TUI gives the
	// terminal back; printing mid-run would corrupt the alternate screen.
	deferred := &utils.DeferredWriter{}
	for _, w := range cmd.app.Warnings {
		_, _ = fmt.Fprintf(deferred, "warning: %s\n", w)
	}

	m := tui.New(tui.Options{
		Config:      cmd.app.Config,
		Library:     cmd.app.Library,
		Coordinator: cmd.app.Coordinator,
		KV:          cmd.app.KV,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		_ = deferred.Flush(os.Stderr)
		return fmt.Errorf("run tui: %w", err)
	}

	return deferred.Flush(os.Stderr)
}
