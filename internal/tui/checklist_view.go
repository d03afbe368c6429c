package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/status"
	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
)

func (m Model) checklistView() string {
	cl, ok := m.library.Checklist(m.current.categoryID, m.current.checklistID)
	if !ok {
		return m.menuView()
	}
	cat, _ := m.library.Category(m.current.categoryID)
	done, total := m.library.Progress(m.current.categoryID, cl.ID, m.coordinator.ItemComplete)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(cl.Name))
	b.WriteString("  ")
	b.WriteString(progressLabel(done, total))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render(cat.Name))
	b.WriteString("\n\n")

	textWidth := itemTextWidth(cl)
	for i, item := range cl.Items {
		b.WriteString(m.itemRow(i, item, textWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer(m.checklistShortHelp(), m.checklistFullHelp()))
	return b.String()
}

func (m Model) itemRow(idx int, item checklist.Item, textWidth int) string {
	st := m.coordinator.Status(m.current.categoryID, m.current.checklistID, item.ID)

	cursor := "  "
	text := lipgloss.NewStyle().Width(textWidth).Render(item.Text)
	if idx == m.itemCursor {
		cursor = styles.IconCursor + " "
		text = styles.SelectedStyle.Width(textWidth).Render(item.Text)
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(cursor)
	b.WriteString(statusIcon(st))
	b.WriteString(" ")
	b.WriteString(text)
	if item.Response != "" {
		b.WriteString("  ")
		b.WriteString(styles.ResponseStyle.Render(item.Response))
	}
	if item.Required {
		b.WriteString(" ")
		b.WriteString(styles.RequiredStyle.Render(styles.IconRequired))
	}
	if item.Notes != "" {
		b.WriteString(" ")
		b.WriteString(styles.MutedStyle.Render(styles.IconNotes))
	}
	return b.String()
}

func itemTextWidth(cl checklist.Checklist) int {
	w := 0
	for _, item := range cl.Items {
		if lw := lipgloss.Width(item.Text); lw > w {
			w = lw
		}
	}
	return w
}

func statusIcon(st status.Status) string {
	switch st {
	case status.StatusChecked:
		return styles.StatusCheckedStyle.Render(styles.IconChecked)
	case status.StatusOverridden:
		return styles.StatusOverriddenStyle.Render(styles.IconOverridden)
	case status.StatusCheckedOverridden:
		return styles.StatusCheckedOverriddenStyle.Render(styles.IconCheckedOverridden)
	default:
		return styles.StatusUncheckedStyle.Render(styles.IconUnchecked)
	}
}
