package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/core/status"
	"github.com/sharo-jef/checklist-sub001/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show one checklist with the current state of every item",
		UsageText: "checklist show <category> <checklist> [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// itemInfo is the JSON output format for a single item in show --json.
type itemInfo struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Status   status.Status `json:"status"`
	Response string        `json:"response,omitempty"`
	Required bool          `json:"required,omitempty"`
	Notes    string        `json:"notes,omitempty"`
}

type showOutput struct {
	Category  string     `json:"category"`
	Checklist string     `json:"checklist"`
	Name      string     `json:"name"`
	Done      int        `json:"done"`
	Total     int        `json:"total"`
	Items     []itemInfo `json:"items"`
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: checklist show <category> <checklist>")
	}

	categoryID := c.Args().Get(0)
	checklistID := c.Args().Get(1)

	list, ok := cmd.app.Library.Checklist(categoryID, checklistID)
	if !ok {
		return fmt.Errorf("unknown checklist %s/%s", categoryID, checklistID)
	}

	cmd.app.HydrateState(ctx)

	coord := cmd.app.Coordinator
	done, total := cmd.app.Library.Progress(categoryID, checklistID, coord.ItemComplete)
	out := c.Root().Writer

	if cmd.jsonOutput {
		result := showOutput{
			Category:  categoryID,
			Checklist: checklistID,
			Name:      list.Name,
			Done:      done,
			Total:     total,
			Items:     make([]itemInfo, 0, len(list.Items)),
		}
		for _, item := range list.Items {
			result.Items = append(result.Items, itemInfo{
				ID:       item.ID,
				Text:     item.Text,
				Status:   coord.Status(categoryID, checklistID, item.ID),
				Response: item.Response,
				Required: item.Required,
				Notes:    item.Notes,
			})
		}
		return iojson.WriteWith(out, os.Stderr, result)
	}

	_, _ = fmt.Fprintf(out, "%s (%d/%d)\n\n", list.Name, done, total)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ITEM\tSTATUS\tRESPONSE")
	for _, item := range list.Items {
		text := item.Text
		if item.Required {
			text += " *"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", text, coord.Status(categoryID, checklistID, item.ID), item.Response)
	}

	return w.Flush()
}
