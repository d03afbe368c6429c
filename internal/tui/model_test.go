package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/config"
	"github.com/sharo-jef/checklist-sub001/internal/core/kv"
	"github.com/sharo-jef/checklist-sub001/internal/core/state"
	"github.com/sharo-jef/checklist-sub001/internal/core/status"
	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
	"github.com/sharo-jef/checklist-sub001/internal/data/db"
	"github.com/sharo-jef/checklist-sub001/internal/data/stores"
	"github.com/sharo-jef/checklist-sub001/pkg/tuitest"
)

func testLibrary() *checklist.Library {
	return &checklist.Library{
		Categories: []checklist.Category{
			{
				ID:    "alpha",
				Name:  "Alpha Procedures",
				Group: "normal",
				Checklists: []checklist.Checklist{
					{
						ID:   "first",
						Name: "First Checklist",
						Items: []checklist.Item{
							{ID: "one", Text: "Parking brake", Response: "SET"},
							{ID: "two", Text: "Fuel quantity", Required: true, Notes: "Check **both** tanks."},
						},
					},
					{
						ID:   "second",
						Name: "Second Checklist",
						Items: []checklist.Item{
							{ID: "only", Text: "Battery master"},
						},
					},
				},
			},
			{
				ID:    "bravo",
				Name:  "Bravo Procedures",
				Group: "emergency",
				Checklists: []checklist.Checklist{
					{
						ID:   "ef",
						Name: "Engine Failure",
						Items: []checklist.Item{
							{ID: "pitch", Text: "Pitch for best glide"},
						},
					},
				},
			},
		},
	}
}

func newBackend(t *testing.T) kv.KV {
	t.Helper()

	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return stores.NewKVStore(database)
}

func newModelOn(t *testing.T, backend kv.KV) Model {
	t.Helper()

	cfg := config.DefaultConfig()
	return New(Options{
		Config:      &cfg,
		Library:     testLibrary(),
		Coordinator: state.NewCoordinator(state.NewStore(backend)),
		KV:          backend,
	})
}

// drive feeds messages through Update the way the Bubble Tea runtime would.
func drive(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// hydrateModel runs the command Init returns and delivers its message, which
// is what the runtime does right after the first frame.
func hydrateModel(t *testing.T, m Model) Model {
	t.Helper()

	cmd := m.Init()
	require.NotNil(t, cmd)
	return drive(m, cmd())
}

func stripView(m Model) string {
	return tuitest.StripANSI(m.View())
}

func cursorLine(t *testing.T, view string) string {
	t.Helper()

	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, styles.IconCursor) {
			return line
		}
	}
	t.Fatalf("no cursor line in view:\n%s", view)
	return ""
}

func TestMenuView_ListsContent(t *testing.T) {
	m := hydrateModel(t, newModelOn(t, newBackend(t)))
	view := stripView(m)

	assert.Contains(t, view, "Checklists")
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "EMERGENCY")
	assert.Contains(t, view, "Alpha Procedures")
	assert.Contains(t, view, "First Checklist")
	assert.Contains(t, view, "Second Checklist")
	assert.Contains(t, view, "Engine Failure")
	assert.Contains(t, view, "0/2")

	// Cursor starts on the first checklist.
	assert.Contains(t, cursorLine(t, view), "First Checklist")
}

func TestFirstFrameIgnoresStoredState(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)

	// Seed completion state through a separate store, as a previous session
	// would have.
	require.True(t, state.NewStore(backend).SetStatus(ctx, "alpha", "first", "one", status.StatusChecked))

	seeded := newModelOn(t, backend)
	fresh := newModelOn(t, newBackend(t))

	// Before hydration the seeded model renders exactly like one with no
	// stored state at all.
	preView := stripView(seeded)
	assert.Equal(t, stripView(fresh), preView)
	assert.NotContains(t, preView, "1/2")

	// Hydration brings the stored progress in.
	seeded = hydrateModel(t, seeded)
	assert.Contains(t, stripView(seeded), "1/2")
}

func TestHydrateRestoresMenuPosition(t *testing.T) {
	backend := newBackend(t)

	m := hydrateModel(t, newModelOn(t, backend))
	m = drive(m, tuitest.KeyDown())
	require.Equal(t, 1, m.cursor)

	// Quitting persists the position.
	next, cmd := m.Update(tuitest.KeyPress('q'))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())

	restored := hydrateModel(t, newModelOn(t, backend))
	assert.Equal(t, 1, restored.cursor)
	assert.Contains(t, cursorLine(t, stripView(restored)), "Second Checklist")
}

func TestHydrate_MissingEntryFallsBackToTop(t *testing.T) {
	m := newModelOn(t, newBackend(t))
	m = drive(m, tuitest.KeyDown(), tuitest.KeyDown())
	require.Equal(t, 2, m.cursor)

	// A position saved for content that no longer exists.
	m = drive(m, hydratedMsg{position: uiPosition{CategoryID: "gone", ChecklistID: "x"}, restored: true})
	assert.Equal(t, 0, m.cursor)
}

func TestChecklist_ToggleAndOverride(t *testing.T) {
	m := hydrateModel(t, newModelOn(t, newBackend(t)))

	m = drive(m, tuitest.KeyEnter())
	require.Equal(t, viewChecklist, m.view)
	view := stripView(m)
	assert.Contains(t, view, "First Checklist")
	assert.Contains(t, view, "Parking brake")
	assert.Contains(t, view, "SET")
	assert.Contains(t, view, styles.IconUnchecked)

	// Space checks the selected item.
	m = drive(m, tuitest.KeyPress(' '))
	assert.Equal(t, status.StatusChecked, m.coordinator.Status("alpha", "first", "one"))
	assert.Contains(t, stripView(m), styles.IconChecked)
	assert.Contains(t, stripView(m), "1/2")

	// Override on a checked item keeps the check and adds the bypass.
	m = drive(m, tuitest.KeyPress('o'))
	assert.Equal(t, status.StatusCheckedOverridden, m.coordinator.Status("alpha", "first", "one"))
	assert.Contains(t, stripView(m), styles.IconCheckedOverridden)

	// Toggle returns any settled state to unchecked.
	m = drive(m, tuitest.KeyPress(' '))
	assert.Equal(t, status.StatusUnchecked, m.coordinator.Status("alpha", "first", "one"))
	assert.Contains(t, stripView(m), "0/2")

	// Esc goes back to the menu.
	m = drive(m, tuitest.KeyEsc())
	assert.Equal(t, viewMenu, m.view)
}

func TestChecklist_ResetConfirm(t *testing.T) {
	m := hydrateModel(t, newModelOn(t, newBackend(t)))
	m = drive(m, tuitest.KeyEnter(), tuitest.KeyPress(' '))
	require.Equal(t, status.StatusChecked, m.coordinator.Status("alpha", "first", "one"))

	// r opens the confirmation modal.
	m = drive(m, tuitest.KeyPress('r'))
	require.Equal(t, viewConfirming, m.view)
	view := stripView(m)
	assert.Contains(t, view, "Reset checklist")
	assert.Contains(t, view, `"First Checklist"`)

	// Esc cancels without touching state.
	m = drive(m, tuitest.KeyEsc())
	assert.Equal(t, viewChecklist, m.view)
	assert.Equal(t, status.StatusChecked, m.coordinator.Status("alpha", "first", "one"))

	// y confirms and clears the checklist.
	m = drive(m, tuitest.KeyPress('r'), tuitest.KeyPress('y'))
	assert.Equal(t, viewChecklist, m.view)
	assert.Equal(t, status.StatusUnchecked, m.coordinator.Status("alpha", "first", "one"))
}

func TestChecklist_NotesOverlay(t *testing.T) {
	m := hydrateModel(t, newModelOn(t, newBackend(t)))
	m = drive(m, tuitest.KeyEnter())

	// The selected item has no notes, so n does nothing.
	m = drive(m, tuitest.KeyPress('n'))
	assert.Equal(t, viewChecklist, m.view)

	m = drive(m, tuitest.KeyDown(), tuitest.KeyPress('n'))
	require.Equal(t, viewNotes, m.view)
	view := stripView(m)
	assert.Contains(t, view, "Fuel quantity")
	assert.Contains(t, view, "tanks")

	m = drive(m, tuitest.KeyEsc())
	assert.Equal(t, viewChecklist, m.view)
}

// flakyKV fails writes on demand while leaving reads alone.
type flakyKV struct {
	kv.KV
	failSet bool
}

func (f *flakyKV) Set(ctx context.Context, key string, value any) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.KV.Set(ctx, key, value)
}

func TestChecklist_WriteFailureShowsNotice(t *testing.T) {
	flaky := &flakyKV{KV: newBackend(t)}

	m := hydrateModel(t, newModelOn(t, flaky))
	m = drive(m, tuitest.KeyEnter())

	flaky.failSet = true
	m = drive(m, tuitest.KeyPress(' '))

	// The item keeps its old status and the footer says why.
	assert.Equal(t, status.StatusUnchecked, m.coordinator.Status("alpha", "first", "one"))
	assert.Contains(t, stripView(m), persistFailureNotice)

	// The next successful write clears the notice.
	flaky.failSet = false
	m = drive(m, tuitest.KeyPress(' '))
	assert.Equal(t, status.StatusChecked, m.coordinator.Status("alpha", "first", "one"))
	assert.NotContains(t, stripView(m), persistFailureNotice)
}

func TestHelpToggle_ShowsFullBindings(t *testing.T) {
	m := hydrateModel(t, newModelOn(t, newBackend(t)))
	m = drive(m, tuitest.KeyEnter())

	assert.NotContains(t, stripView(m), "reset")

	m = drive(m, tuitest.KeyPress('?'))
	assert.Contains(t, stripView(m), "reset")

	m = drive(m, tuitest.KeyPress('?'))
	assert.NotContains(t, stripView(m), "reset")
}

func TestWindowSize_Propagates(t *testing.T) {
	m := newModelOn(t, newBackend(t))
	m = drive(m, tuitest.WindowSize(120, 40))

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 120, m.help.Width)
}
