// Package commands wires the CLI surface: global flags, the TUI default
// action, and the subcommands operating on checklist state.
package commands

import (
	"context"

	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/config"
	"github.com/sharo-jef/checklist-sub001/internal/core/kv"
	"github.com/sharo-jef/checklist-sub001/internal/core/state"
	"github.com/sharo-jef/checklist-sub001/internal/data/db"
)

// App bundles the dependencies built in the Before hook. Commands hold a
// pointer to it; main populates it once startup succeeds.
type App struct {
	Config      *config.Config
	Library     *checklist.Library
	DB          *db.DB
	KV          kv.KV
	Store       *state.Store
	Coordinator *state.Coordinator

	// Warnings collected during startup, such as falling back to the builtin
	// library when user content fails to load. The TUI surfaces them on
	// stderr after it releases the terminal; they also land in the log file.
	Warnings []string
}

// HydrateState loads persisted completion state into the coordinator before
// a command action reads it. The TUI does not call this: it defers hydration
// to a Bubble Tea command so its first frame renders without stored state.
func (a *App) HydrateState(ctx context.Context) {
	a.Coordinator.Hydrate(ctx)
}
