package tui

import (
	"context"

	"github.com/sharo-jef/checklist-sub001/internal/core/kv"
)

const positionKey = "menu-position"

// uiPosition remembers where the user left off between sessions. It lives in
// the KV store under its own namespace so it never collides with checklist
// state.
type uiPosition struct {
	CategoryID  string `json:"categoryId"`
	ChecklistID string `json:"checklistId"`
}

func positionStore(backend kv.KV) *kv.TypedKV[uiPosition] {
	return kv.Scoped[uiPosition](backend, "ui")
}

func (m *Model) savePosition(ctx context.Context) {
	if m.position == nil || len(m.entries) == 0 {
		return
	}
	entry := m.entries[m.cursor]
	pos := uiPosition{CategoryID: entry.categoryID, ChecklistID: entry.checklistID}
	if err := m.position.Set(ctx, positionKey, pos); err != nil {
		m.log.Debug().Err(err).Msg("failed to persist menu position")
	}
}
