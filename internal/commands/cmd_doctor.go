package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/core/doctor"
	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
	"github.com/sharo-jef/checklist-sub001/pkg/iojson"
)

type DoctorCmd struct {
	flags *Flags
	app   *App

	// flags
	format string
	fix    bool
}

// NewDoctorCmd creates a new doctor command
func NewDoctorCmd(flags *Flags, app *App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

// Register adds the doctor command to the application
func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your checklist setup",
		UsageText:   "checklist doctor [options]",
		Description: "Runs diagnostic checks on configuration, checklist content, and storage.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "fix",
				Usage:       "automatically fix issues (e.g., prune state for deleted items)",
				Destination: &cmd.fix,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	cmd.app.HydrateState(ctx)

	checks := []doctor.Check{
		&doctor.ConfigCheck{
			ConfigPath: cmd.flags.ConfigPath,
			Config:     cmd.app.Config,
		},
		&doctor.ContentCheck{
			Config: cmd.app.Config,
		},
		&doctor.StorageCheck{
			DataDir: cmd.app.Config.DataDir,
			DB:      cmd.app.DB,
			KV:      cmd.app.KV,
			Library: cmd.app.Library,
			Fix:     cmd.fix,
		},
	}

	results := doctor.RunAll(ctx, checks)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
}

func (cmd *DoctorCmd) outputText(results []doctor.Result) error {
	w := os.Stderr
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("Checklist Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.SubtitleStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.SuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if !cmd.fix {
		fixable := doctor.CountFixable(results)
		if fixable > 0 {
			_, _ = fmt.Fprintln(w)
			hint := styles.MutedStyle.Render(fmt.Sprintf("Run 'checklist doctor --fix' to fix %d issue(s)", fixable))
			_, _ = fmt.Fprintln(w, hint)
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
