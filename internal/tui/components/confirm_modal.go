// Package components holds reusable Bubble Tea widgets shared by the TUI views.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
)

// ConfirmModal is a yes/no confirmation dialog rendered over the active view.
type ConfirmModal struct {
	title           string
	message         string
	confirmSelected bool
	confirmed       bool
	cancelled       bool
}

// NewConfirmModal creates a new confirmation modal with the cancel button
// preselected so a stray enter does not destroy anything.
func NewConfirmModal(title, message string) ConfirmModal {
	return ConfirmModal{
		title:   title,
		message: message,
	}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "right", "tab", "h", "l":
		m.confirmSelected = !m.confirmSelected
	case "y", "Y":
		m.confirmed = true
	case "enter":
		if m.confirmSelected {
			m.confirmed = true
		} else {
			m.cancelled = true
		}
	case "n", "N", "esc":
		m.cancelled = true
	}

	return m, nil
}

// Confirmed returns true if the user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if the user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}

// Overlay renders the modal centered in the given screen area.
func (m ConfirmModal) Overlay(width, height int) string {
	var confirmBtn, cancelBtn string
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render("Confirm")
		cancelBtn = styles.ModalButtonStyle.Render("Cancel")
	} else {
		confirmBtn = styles.ModalButtonStyle.Render("Confirm")
		cancelBtn = styles.ModalButtonSelectedStyle.Render("Cancel")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, cancelBtn, "  ", confirmBtn)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		lipgloss.NewStyle().MarginTop(1).Render(buttons),
		styles.ModalHelpStyle.Render("←/→ select  enter apply  y/n shortcut  esc cancel"),
	)

	modal := styles.ModalStyle.Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
