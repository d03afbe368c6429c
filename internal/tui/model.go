// Package tui implements the interactive checklist browser.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/config"
	"github.com/sharo-jef/checklist-sub001/internal/core/kv"
	"github.com/sharo-jef/checklist-sub001/internal/core/logging"
	"github.com/sharo-jef/checklist-sub001/internal/core/state"
	"github.com/sharo-jef/checklist-sub001/internal/core/status"
	"github.com/sharo-jef/checklist-sub001/internal/tui/components"
)

// viewState represents the current state of the TUI.
type viewState int

const (
	viewMenu viewState = iota
	viewChecklist
	viewNotes
	viewConfirming
)

// hydratedMsg is sent once persisted completion state has been loaded into
// the coordinator.
type hydratedMsg struct {
	position uiPosition
	restored bool
}

// menuEntry is one selectable row in the menu: a checklist within a category.
type menuEntry struct {
	categoryID  string
	checklistID string
}

// Options carries the app dependencies the TUI needs.
type Options struct {
	Config      *config.Config
	Library     *checklist.Library
	Coordinator *state.Coordinator
	KV          kv.KV // for UI state persistence, optional
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg         *config.Config
	library     *checklist.Library
	coordinator *state.Coordinator
	position    *kv.TypedKV[uiPosition]
	log         zerolog.Logger

	keys keyMap
	help help.Model

	view       viewState
	entries    []menuEntry
	cursor     int // menu cursor, indexes entries
	itemCursor int // checklist cursor, indexes the open checklist's items
	current    menuEntry

	confirm *components.ConfirmModal
	notes   *notesOverlay

	statusLine string // persist-failure notice, cleared on the next successful write
	width      int
	height     int
	quitting   bool
}

// New creates the TUI model. The coordinator starts empty; persisted state is
// loaded by the command Init returns, so the first frame never depends on it.
func New(opts Options) Model {
	m := Model{
		cfg:         opts.Config,
		library:     opts.Library,
		coordinator: opts.Coordinator,
		log:         logging.Component("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		entries:     buildEntries(opts.Library),
		width:       80,
		height:      24,
	}
	if opts.KV != nil {
		m.position = positionStore(opts.KV)
	}
	return m
}

func buildEntries(library *checklist.Library) []menuEntry {
	var entries []menuEntry
	for _, group := range library.Groups() {
		for _, cat := range library.CategoriesInGroup(group) {
			for _, cl := range cat.Checklists {
				entries = append(entries, menuEntry{categoryID: cat.ID, checklistID: cl.ID})
			}
		}
	}
	return entries
}

func (m Model) Init() tea.Cmd {
	return m.hydrate()
}

// hydrate loads persisted state off the render path. The first frame always
// draws from the coordinator's empty cache; stored progress shows up when
// this command's message lands.
func (m Model) hydrate() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		m.coordinator.Hydrate(ctx)

		msg := hydratedMsg{}
		if m.position != nil {
			if pos, err := m.position.Get(ctx, positionKey); err == nil {
				msg.position = pos
				msg.restored = true
			}
		}
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case hydratedMsg:
		if msg.restored {
			m.cursor = m.entryIndex(msg.position)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.view {
	case viewConfirming:
		return m.handleConfirmKey(msg)
	case viewNotes:
		return m.handleNotesKey(msg)
	case viewChecklist:
		return m.handleChecklistKey(msg)
	default:
		return m.handleMenuKey(msg)
	}
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if len(m.entries) > 0 {
			m.current = m.entries[m.cursor]
			m.itemCursor = 0
			m.statusLine = ""
			m.view = viewChecklist
		}
	}
	return m, nil
}

func (m Model) handleChecklistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cl, ok := m.library.Checklist(m.current.categoryID, m.current.checklistID)
	if !ok {
		m.view = viewMenu
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.view = viewMenu
		m.statusLine = ""
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.itemCursor > 0 {
			m.itemCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.itemCursor < len(cl.Items)-1 {
			m.itemCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.applyAction(cl, status.ActionToggle)
	case key.Matches(msg, m.keys.Override):
		m.applyAction(cl, status.ActionOverride)
	case key.Matches(msg, m.keys.Notes):
		if item, ok := m.selectedItem(cl); ok && item.Notes != "" {
			overlay := newNotesOverlay(item.Text, item.Notes, m.width, m.height)
			m.notes = &overlay
			m.view = viewNotes
		}
	case key.Matches(msg, m.keys.Reset):
		modal := components.NewConfirmModal(
			"Reset checklist",
			fmt.Sprintf("Clear all recorded state for %q?", cl.Name),
		)
		m.confirm = &modal
		m.view = viewConfirming
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm == nil {
		m.view = viewChecklist
		return m, nil
	}

	modal, cmd := m.confirm.Update(msg)
	m.confirm = &modal

	switch {
	case modal.Confirmed():
		if m.coordinator.ResetChecklist(context.Background(), m.current.categoryID, m.current.checklistID) {
			m.statusLine = ""
		} else {
			m.statusLine = persistFailureNotice
		}
		m.confirm = nil
		m.view = viewChecklist
	case modal.Cancelled():
		m.confirm = nil
		m.view = viewChecklist
	}
	return m, cmd
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "n", "q":
		m.notes = nil
		m.view = viewChecklist
		return m, nil
	}
	if m.notes != nil {
		m.notes.Update(msg)
	}
	return m, nil
}

// persistFailureNotice is shown in the footer when a write fails. The session
// keeps working from the in-memory cache.
const persistFailureNotice = "not saved: storage error"

func (m *Model) applyAction(cl checklist.Checklist, action status.Action) {
	item, ok := m.selectedItem(cl)
	if !ok {
		return
	}
	_, saved := m.coordinator.Apply(context.Background(), m.current.categoryID, m.current.checklistID, item.ID, action)
	if saved {
		m.statusLine = ""
	} else {
		m.statusLine = persistFailureNotice
	}
}

func (m Model) selectedItem(cl checklist.Checklist) (checklist.Item, bool) {
	if m.itemCursor < 0 || m.itemCursor >= len(cl.Items) {
		return checklist.Item{}, false
	}
	return cl.Items[m.itemCursor], true
}

func (m Model) entryIndex(pos uiPosition) int {
	for i, e := range m.entries {
		if e.categoryID == pos.CategoryID && e.checklistID == pos.ChecklistID {
			return i
		}
	}
	// Content changed since the position was saved, start at the top.
	return 0
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.savePosition(context.Background())
	m.quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewChecklist:
		return m.checklistView()
	case viewNotes:
		if m.notes != nil {
			return m.notes.Overlay(m.width, m.height)
		}
		return m.checklistView()
	case viewConfirming:
		if m.confirm != nil {
			return m.confirm.Overlay(m.width, m.height)
		}
		return m.checklistView()
	default:
		return m.menuView()
	}
}
