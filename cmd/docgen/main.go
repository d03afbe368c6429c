// Command docgen generates CLI reference documentation from the checklist
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/sharo-jef/checklist-sub001/internal/commands"
)

func main() {
	flags := &commands.Flags{}
	app := &commands.App{}

	root := &cli.Command{
		Name:      "checklist",
		Usage:     "Interactive checklists with persistent completion state",
		UsageText: "checklist [global options] command [command options]",
		Description: `Checklist runs structured checklists from the terminal and remembers which
items you completed across restarts.

Run 'checklist' with no arguments to open the interactive browser.
Run 'checklist ls' to see every checklist and its progress.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("CHECKLIST_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file",
				Sources: cli.EnvVars("CHECKLIST_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("CHECKLIST_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("CHECKLIST_DATA_DIR"),
				Value:   commands.DefaultDataDir(),
			},
		},
	}

	root = commands.NewLsCmd(flags, app).Register(root)
	root = commands.NewShowCmd(flags, app).Register(root)
	root = commands.NewCheckCmd(flags, app).Register(root)
	root = commands.NewResetCmd(flags, app).Register(root)
	root = commands.NewExportCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewDoctorCmd(flags, app).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
