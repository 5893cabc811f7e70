package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/kanban/internal/board"
	"github.com/h0rv/kanban/internal/domain"
)

// Glyphs for statuses.
var statusIcons = map[string]string{
	domain.StatusBacklog:    "◌",
	domain.StatusTodo:       "○",
	domain.StatusInProgress: "◐",
	domain.StatusDone:       "●",
	domain.StatusCancelled:  "⊘",
}

var statusColors = map[string]lipgloss.Color{
	domain.StatusBacklog:    lipgloss.Color("241"),
	domain.StatusTodo:       lipgloss.Color("252"),
	domain.StatusInProgress: lipgloss.Color("220"),
	domain.StatusDone:       lipgloss.Color("62"),
	domain.StatusCancelled:  lipgloss.Color("241"),
}

// Glyphs for priority labels.
var priorityIcons = map[string]string{
	domain.LabelNoPriority: "⋯",
	domain.LabelUrgent:     "!",
	domain.LabelHigh:       "▮▮▮",
	domain.LabelMedium:     "▮▮▯",
	domain.LabelLow:        "▮▯▯",
}

var priorityColors = map[string]lipgloss.Color{
	domain.LabelNoPriority: lipgloss.Color("241"),
	domain.LabelUrgent:     lipgloss.Color("196"),
	domain.LabelHigh:       lipgloss.Color("208"),
	domain.LabelMedium:     lipgloss.Color("252"),
	domain.LabelLow:        lipgloss.Color("245"),
}

// fallbackIcon marks groups with no dedicated glyph ("Other", unknown statuses).
const fallbackIcon = "·"

// Header is the presentation of one column header.
type Header struct {
	Icon  string
	Color lipgloss.Color
	Label string

	// Avatar is set only when grouping by user and the user is known.
	Avatar    string
	Available bool
}

// HeaderFor derives a column header from the group key alone.
// The users list is only consulted to decorate user columns with an avatar.
func HeaderFor(grouping domain.GroupingDimension, key string, users domain.Users) Header {
	h := Header{Icon: fallbackIcon, Color: lipgloss.Color("241"), Label: key}

	switch grouping {
	case domain.GroupByPriority:
		h.Icon, h.Color = PriorityIcon(key)
	case domain.GroupByUser:
		h.Icon = ""
		// Keys are names, so users sharing a name all decorate with the first one.
		if user, ok := users.FindByName(key); ok && key != board.KeyUnknownUser {
			h.Avatar = Initials(user.Name)
			h.Available = user.Available
		}
	default:
		// "Other" and non-canonical statuses keep the fallback glyph.
		if domain.IsStatus(key) {
			h.Icon, h.Color = StatusIcon(key)
		}
	}

	return h
}

// StatusIcon returns the glyph and color of a status.
func StatusIcon(status string) (string, lipgloss.Color) {
	icon, ok := statusIcons[status]
	if !ok {
		return fallbackIcon, lipgloss.Color("241")
	}
	return icon, statusColors[status]
}

// PriorityIcon returns the glyph and color of a priority label.
func PriorityIcon(label string) (string, lipgloss.Color) {
	icon, ok := priorityIcons[label]
	if !ok {
		return priorityIcons[domain.LabelNoPriority], priorityColors[domain.LabelNoPriority]
	}
	return icon, priorityColors[label]
}

// priorityLabelOf returns the display label of a ticket's priority.
func priorityLabelOf(t domain.Ticket) string {
	if label, ok := domain.PriorityLabel(t.Priority); ok {
		return label
	}
	return domain.LabelNoPriority
}

// Initials returns a two-letter avatar for a name: the first letters of the
// first two words, or the first two letters of a single word.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}

	if len(words) > 1 {
		first := []rune(words[0])
		second := []rune(words[1])
		return strings.ToUpper(string(first[0]) + string(second[0]))
	}

	runes := []rune(words[0])
	if len(runes) == 1 {
		return string(unicode.ToUpper(runes[0]))
	}
	return strings.ToUpper(string(runes[:2]))
}

// Render formats the header as "icon label (count)" with an optional avatar,
// truncating the label so the plain text fits in width cells.
func (h Header) Render(count, width int) string {
	var prefix []string
	if h.Avatar != "" {
		avatar := avatarStyle.Render(h.Avatar)
		if h.Available {
			avatar += availableStyle.Render("•")
		}
		prefix = append(prefix, avatar)
	}
	if h.Icon != "" {
		prefix = append(prefix, lipgloss.NewStyle().Foreground(h.Color).Render(h.Icon))
	}

	countText := fmt.Sprintf("(%d)", count)
	used := lipgloss.Width(countText) + 1
	for _, p := range prefix {
		used += lipgloss.Width(p) + 1
	}

	label := truncate(h.Label, width-used)
	parts := append(prefix, columnHeaderStyle.Render(label), dimStyle.Render(countText))
	return strings.Join(parts, " ")
}

// truncate shortens s to at most width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
