package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/kanban/internal/domain"
)

var (
	// HelpOverlayStyle defines the style for the help overlay container.
	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		MarginTop(2)
)

// HelpModel wraps the bubbles help component.
type HelpModel struct {
	help   help.Model
	keymap KeyMap
}

// NewHelpModel creates a new help overlay model.
func NewHelpModel(keymap KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true

	return HelpModel{
		help:   h,
		keymap: keymap,
	}
}

// View renders the help overlay, headed by the active display settings.
func (m HelpModel) View(width int, grouping domain.GroupingDimension, sorting domain.SortDimension) string {
	m.help.Width = width - 8 // Account for padding and border
	current := TitleStyle.Render(fmt.Sprintf("Grouping: %s   Ordering: %s", grouping.Title(), sorting.Title()))
	return HelpOverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left, current, m.help.View(m.keymap), "", legend()))
}

// legend lists the card markers for every priority and status.
func legend() string {
	priorities := make([]string, 0, 5)
	for _, label := range domain.PriorityLabels() {
		icon, color := PriorityIcon(label)
		priorities = append(priorities, lipgloss.NewStyle().Foreground(color).Render(icon)+" "+label)
	}

	statuses := make([]string, 0, len(domain.StatusSet))
	for _, status := range domain.StatusSet {
		icon, color := StatusIcon(status)
		statuses = append(statuses, lipgloss.NewStyle().Foreground(color).Render(icon)+" "+status)
	}

	return dimStyle.Render("Priority  ") + strings.Join(priorities, "  ") + "\n" +
		dimStyle.Render("Status    ") + strings.Join(statuses, "  ")
}
