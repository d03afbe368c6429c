package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/core/state"
	"github.com/sharo-jef/checklist-sub001/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *App

	reader iojson.FileReader[json.RawMessage]

	// flags
	yes bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Replace the persisted state record with one from a file or stdin",
		UsageText: "checklist import [-f state.json] [--yes]",
		Description: `Reads a state record exported by 'checklist export' and replaces the
current state with it wholesale. Legacy records from older versions are
migrated on the way in. Entries for content that no longer exists are kept;
run 'checklist doctor --fix' to prune them.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	raw, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	rec, err := state.DecodeRecord(raw)
	if err != nil {
		return fmt.Errorf("parse state record: %w", err)
	}

	if !cmd.yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Import state").
			Description(fmt.Sprintf("Replace current state with %d item states?", rec.ItemStates.Len())).
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirm prompt: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	cmd.app.HydrateState(ctx)

	if !cmd.app.Store.Save(ctx, state.Partial{ItemStates: rec.ItemStates}) {
		return fmt.Errorf("state not saved: storage write failed")
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Imported %d item states\n", rec.ItemStates.Len())
	return nil
}
