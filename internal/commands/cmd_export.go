package commands

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/core/state"
	"github.com/sharo-jef/checklist-sub001/pkg/iojson"
)

type ExportCmd struct {
	flags *Flags
	app   *App
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write the persisted state record to stdout as JSON",
		UsageText: "checklist export > state.json",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	rec, ok := cmd.app.Store.Load(ctx)
	if !ok {
		// Nothing stored yet. Emit a valid empty record so the output is
		// always importable.
		rec = state.Record{
			Version:     state.SchemaVersion,
			LastUpdated: time.Now().UnixMilli(),
			ItemStates:  state.ItemStates{},
		}
	}
	if rec.ItemStates == nil {
		rec.ItemStates = state.ItemStates{}
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, rec)
}
