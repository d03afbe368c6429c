package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List categories and checklists with completion progress",
		UsageText: "checklist ls [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines, one checklist per line",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// checklistInfo is the JSON output format for checklist ls --json.
type checklistInfo struct {
	Group      string `json:"group"`
	Category   string `json:"category"`
	Checklist  string `json:"checklist"`
	Name       string `json:"name"`
	Done       int    `json:"done"`
	Total      int    `json:"total"`
	Complete   bool   `json:"complete"`
	Overridden bool   `json:"overridden"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	cmd.app.HydrateState(ctx)

	library := cmd.app.Library
	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, group := range library.Groups() {
			for _, cat := range library.CategoriesInGroup(group) {
				for _, cl := range cat.Checklists {
					done, total := library.Progress(cat.ID, cl.ID, cmd.app.Coordinator.ItemComplete)
					info := checklistInfo{
						Group:      group,
						Category:   cat.ID,
						Checklist:  cl.ID,
						Name:       cl.Name,
						Done:       done,
						Total:      total,
						Complete:   total > 0 && done == total,
						Overridden: cmd.checklistOverridden(cat.ID, cl.ID),
					}
					if err := iojson.WriteLine(out, info); err != nil {
						return fmt.Errorf("encode checklist: %w", err)
					}
				}
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "GROUP\tCATEGORY\tCHECKLIST\tPROGRESS")

	for _, group := range library.Groups() {
		for _, cat := range library.CategoriesInGroup(group) {
			for _, cl := range cat.Checklists {
				done, total := library.Progress(cat.ID, cl.ID, cmd.app.Coordinator.ItemComplete)
				progress := fmt.Sprintf("%d/%d", done, total)
				if total > 0 && done == total {
					progress += " done"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", group, cat.ID, cl.ID, progress)
			}
		}
	}

	return w.Flush()
}

// checklistOverridden reports whether any item in the checklist carries an
// override, since a "complete" checklist may have been bypassed rather than
// performed.
func (cmd *LsCmd) checklistOverridden(categoryID, checklistID string) bool {
	cl, ok := cmd.app.Library.Checklist(categoryID, checklistID)
	if !ok {
		return false
	}
	for _, item := range cl.Items {
		if cmd.app.Coordinator.ItemOverridden(categoryID, checklistID, item.ID) {
			return true
		}
	}
	return false
}
