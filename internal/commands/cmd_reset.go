package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
)

type ResetCmd struct {
	flags *Flags
	app   *App

	// flags
	checklist  string
	categories []string
	all        bool
	yes        bool
}

// NewResetCmd creates a new reset command
func NewResetCmd(flags *Flags, app *App) *ResetCmd {
	return &ResetCmd{flags: flags, app: app}
}

// Register adds the reset command to the application
func (cmd *ResetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "reset",
		Usage:     "Clear recorded state for a checklist, categories, or everything",
		UsageText: "checklist reset (--checklist <category>/<checklist> | --category <id>... | --all) [--yes]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "checklist",
				Usage:       "reset one checklist, given as category/checklist",
				Destination: &cmd.checklist,
			},
			&cli.StringSliceFlag{
				Name:        "category",
				Usage:       "reset every checklist in a category (repeatable)",
				Destination: &cmd.categories,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "reset all recorded state",
				Destination: &cmd.all,
			},
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

func (cmd *ResetCmd) run(ctx context.Context, c *cli.Command) error {
	modes := 0
	if cmd.checklist != "" {
		modes++
	}
	if len(cmd.categories) > 0 {
		modes++
	}
	if cmd.all {
		modes++
	}
	if modes != 1 {
		return fmt.Errorf("specify exactly one of --checklist, --category, or --all")
	}

	cmd.app.HydrateState(ctx)

	switch {
	case cmd.checklist != "":
		return cmd.resetChecklist(ctx, c)
	case len(cmd.categories) > 0:
		return cmd.resetCategories(ctx, c)
	default:
		return cmd.resetAll(ctx, c)
	}
}

func (cmd *ResetCmd) resetChecklist(ctx context.Context, c *cli.Command) error {
	parts := strings.SplitN(cmd.checklist, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("--checklist wants category/checklist, got %q", cmd.checklist)
	}

	categoryID, checklistID := parts[0], parts[1]
	list, ok := cmd.app.Library.Checklist(categoryID, checklistID)
	if !ok {
		return fmt.Errorf("unknown checklist %s/%s", categoryID, checklistID)
	}

	ok, err := cmd.confirm("Reset checklist", fmt.Sprintf("Clear all recorded state for %q?", list.Name))
	if err != nil || !ok {
		return err
	}

	if !cmd.app.Coordinator.ResetChecklist(ctx, categoryID, checklistID) {
		return fmt.Errorf("state not saved: storage write failed")
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Reset %s/%s\n", categoryID, checklistID)
	return nil
}

func (cmd *ResetCmd) resetCategories(ctx context.Context, c *cli.Command) error {
	for _, id := range cmd.categories {
		if _, ok := cmd.app.Library.Category(id); !ok {
			return fmt.Errorf("unknown category %q", id)
		}
	}

	ok, err := cmd.confirm("Reset categories", fmt.Sprintf("Clear recorded state for %s?", strings.Join(cmd.categories, ", ")))
	if err != nil || !ok {
		return err
	}

	if !cmd.app.Coordinator.ResetCategories(ctx, cmd.categories) {
		return fmt.Errorf("state not saved: storage write failed")
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Reset %d categories\n", len(cmd.categories))
	return nil
}

func (cmd *ResetCmd) resetAll(ctx context.Context, c *cli.Command) error {
	ok, err := cmd.confirm("Reset everything", "Clear all recorded state for every checklist?")
	if err != nil || !ok {
		return err
	}

	if !cmd.app.Coordinator.ResetAll(ctx) {
		return fmt.Errorf("state not saved: storage write failed")
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "Reset all state")
	return nil
}

// confirm prompts unless --yes was given. A declined prompt is not an error,
// the command just does nothing.
func (cmd *ResetCmd) confirm(title, description string) (bool, error) {
	if cmd.yes {
		return true, nil
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&confirmed).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}

	return confirmed, nil
}
