package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharo-jef/checklist-sub001/pkg/tuitest"
)

func press(m ConfirmModal, msgs ...tea.Msg) ConfirmModal {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestConfirmModal_EnterWithDefaultSelectionCancels(t *testing.T) {
	m := NewConfirmModal("Reset checklist", "Clear everything?")

	// Cancel is preselected, so enter must not confirm.
	m = press(m, tuitest.KeyEnter())
	assert.True(t, m.Cancelled())
	assert.False(t, m.Confirmed())
}

func TestConfirmModal_ArrowThenEnterConfirms(t *testing.T) {
	m := NewConfirmModal("Reset checklist", "Clear everything?")

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tuitest.KeyEnter())
	assert.True(t, m.Confirmed())
	assert.False(t, m.Cancelled())
}

func TestConfirmModal_SelectionTogglesBack(t *testing.T) {
	m := NewConfirmModal("t", "m")

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyLeft}, tuitest.KeyEnter())
	assert.True(t, m.Cancelled())
}

func TestConfirmModal_Shortcuts(t *testing.T) {
	m := press(NewConfirmModal("t", "m"), tuitest.KeyPress('y'))
	assert.True(t, m.Confirmed())

	m = press(NewConfirmModal("t", "m"), tuitest.KeyPress('n'))
	assert.True(t, m.Cancelled())

	m = press(NewConfirmModal("t", "m"), tuitest.KeyEsc())
	assert.True(t, m.Cancelled())
}

func TestConfirmModal_IgnoresNonKeyMessages(t *testing.T) {
	m := NewConfirmModal("t", "m")

	m = press(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.False(t, m.Confirmed())
	assert.False(t, m.Cancelled())
}

func TestConfirmModal_Overlay(t *testing.T) {
	m := NewConfirmModal("Reset checklist", "Clear all recorded state?")

	view := tuitest.StripANSI(m.Overlay(80, 24))
	require.NotEmpty(t, view)
	assert.Contains(t, view, "Reset checklist")
	assert.Contains(t, view, "Clear all recorded state?")
	assert.Contains(t, view, "Confirm")
	assert.Contains(t, view, "Cancel")
}
