package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts category_id and checklist_id from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if categoryID := GetCategoryID(ctx); categoryID != "" {
		e.Str("category_id", categoryID)
	}

	if checklistID := GetChecklistID(ctx); checklistID != "" {
		e.Str("checklist_id", checklistID)
	}
}
