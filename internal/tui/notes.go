package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
)

const (
	notesMaxWidth  = 80
	notesMaxHeight = 24
	notesMargin    = 4
	notesChrome    = 6
	notesPadding   = 4
)

// notesOverlay displays an item's notes with markdown rendering.
type notesOverlay struct {
	title    string
	viewport viewport.Model
}

func newNotesOverlay(title, markdown string, width, height int) notesOverlay {
	overlayWidth := min(width-notesMargin, notesMaxWidth)
	overlayHeight := min(height-notesMargin, notesMaxHeight)

	vp := viewport.New(overlayWidth-notesPadding, overlayHeight-notesChrome)
	vp.SetContent(renderMarkdown(markdown, overlayWidth-notesPadding))

	return notesOverlay{
		title:    title,
		viewport: vp,
	}
}

func renderMarkdown(markdown string, width int) string {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw notes")
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw notes")
		return markdown
	}

	return strings.TrimSpace(rendered)
}

// Update forwards messages to the viewport so its default keymap handles
// scrolling.
func (n *notesOverlay) Update(msg any) {
	n.viewport, _ = n.viewport.Update(msg)
}

// Overlay renders the notes centered in the given screen area.
func (n notesOverlay) Overlay(width, height int) string {
	overlayWidth := min(width-notesMargin, notesMaxWidth)

	scrollInfo := ""
	if n.viewport.TotalLineCount() > n.viewport.VisibleLineCount() {
		scrollInfo = styles.MutedStyle.Render(fmt.Sprintf(" (%.0f%%)", n.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.NotesTitleStyle.Render(n.title)+scrollInfo,
		"",
		n.viewport.View(),
		styles.ModalHelpStyle.Render("↑/↓ scroll  esc close"),
	)

	modal := styles.NotesStyle.Width(overlayWidth).Render(content)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}
