package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/styles"
)

func (m Model) menuView() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.IconCheckList + "Checklists"))
	b.WriteString("\n\n")

	nameWidth := m.menuNameWidth()
	idx := 0
	for _, group := range m.library.Groups() {
		b.WriteString(styles.SubtitleStyle.Render(strings.ToUpper(group)))
		b.WriteString("\n")
		for _, cat := range m.library.CategoriesInGroup(group) {
			done, total := m.library.CategoryProgress(cat.ID, m.coordinator.ItemComplete)
			b.WriteString("  ")
			b.WriteString(styles.MutedStyle.Render(cat.Name))
			b.WriteString("  ")
			b.WriteString(progressLabel(done, total))
			b.WriteString("\n")
			for _, cl := range cat.Checklists {
				b.WriteString(m.menuRow(idx, cat.ID, cl, nameWidth))
				b.WriteString("\n")
				idx++
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.footer(m.menuShortHelp(), m.menuFullHelp()))
	return b.String()
}

func (m Model) menuRow(idx int, categoryID string, cl checklist.Checklist, nameWidth int) string {
	done, total := m.library.Progress(categoryID, cl.ID, m.coordinator.ItemComplete)

	cursor := "  "
	name := lipgloss.NewStyle().Width(nameWidth).Render(cl.Name)
	if idx == m.cursor {
		cursor = styles.IconCursor + " "
		name = styles.SelectedStyle.Width(nameWidth).Render(cl.Name)
	}

	return fmt.Sprintf("    %s%s  %s", cursor, name, progressLabel(done, total))
}

func (m Model) menuNameWidth() int {
	w := 0
	for _, e := range m.entries {
		if cl, ok := m.library.Checklist(e.categoryID, e.checklistID); ok {
			if lw := lipgloss.Width(cl.Name); lw > w {
				w = lw
			}
		}
	}
	return w
}

func progressLabel(done, total int) string {
	label := fmt.Sprintf("%d/%d", done, total)
	if total > 0 && done == total {
		return styles.ProgressDoneStyle.Render(styles.IconChecked + " " + label)
	}
	return styles.ProgressPendingStyle.Render(label)
}

func (m Model) footer(short []key.Binding, full [][]key.Binding) string {
	var b strings.Builder
	if m.statusLine != "" {
		b.WriteString(styles.ErrorStyle.Render(m.statusLine))
		b.WriteString("\n")
	}
	if m.help.ShowAll {
		b.WriteString(m.help.FullHelpView(full))
	} else {
		b.WriteString(m.help.ShortHelpView(short))
	}
	return b.String()
}
