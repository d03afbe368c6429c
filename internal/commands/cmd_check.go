package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/core/status"
)

// CheckCmd registers the check and override commands. Both apply one action
// to one item and differ only in which action they send.
type CheckCmd struct {
	flags *Flags
	app   *App
}

// NewCheckCmd creates a new check command
func NewCheckCmd(flags *Flags, app *App) *CheckCmd {
	return &CheckCmd{flags: flags, app: app}
}

// Register adds the check and override commands to the application
func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "check",
			Usage:     "Toggle an item between unchecked and checked",
			UsageText: "checklist check <category> <checklist> <item>",
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.run(ctx, c, status.ActionToggle)
			},
		},
		&cli.Command{
			Name:      "override",
			Usage:     "Apply or clear the override on an item",
			UsageText: "checklist override <category> <checklist> <item>",
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.run(ctx, c, status.ActionOverride)
			},
		},
	)

	return app
}

func (cmd *CheckCmd) run(ctx context.Context, c *cli.Command, action status.Action) error {
	if c.NArg() < 3 {
		return fmt.Errorf("usage: checklist %s <category> <checklist> <item>", c.Name)
	}

	categoryID := c.Args().Get(0)
	checklistID := c.Args().Get(1)
	itemID := c.Args().Get(2)

	if _, ok := cmd.app.Library.Item(categoryID, checklistID, itemID); !ok {
		return fmt.Errorf("unknown item %s/%s/%s", categoryID, checklistID, itemID)
	}

	cmd.app.HydrateState(ctx)

	next, saved := cmd.app.Coordinator.Apply(ctx, categoryID, checklistID, itemID, action)
	if !saved {
		return fmt.Errorf("state not saved: storage write failed")
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s/%s/%s is now %s\n", categoryID, checklistID, itemID, next)
	return nil
}
