package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/kanban/internal/domain"
	"github.com/muesli/reflow/wordwrap"
)

// Layout constants
const (
	leftPanelRatio = 0.35 // Left panel takes 35% of width
	minLeftWidth   = 26
	maxLeftWidth   = 44
	borderSize     = 2 // Top + bottom border
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("62")).
			PaddingLeft(1)

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))
)

// DetailModel shows one ticket: metadata on the left, wrapped title and tags on the right
type DetailModel struct {
	ticket   domain.Ticket
	assignee *domain.User
	link     string

	viewport viewport.Model
	toast    string
	stale    bool // ticket missing from the latest snapshot

	width  int
	height int
}

// NewDetailModel creates a new detail view model.
// assignee is nil when the ticket's user is unknown; link may be empty.
func NewDetailModel(ticket domain.Ticket, assignee *domain.User, link string) DetailModel {
	vp := viewport.New(40, 10) // Resized on WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		ticket:   ticket,
		assignee: assignee,
		link:     link,
		viewport: vp,
	}
	m.updateViewportContent()
	return m
}

// withTicket swaps in a newer copy of the ticket, keeping size and scroll position.
func (m DetailModel) withTicket(ticket domain.Ticket, assignee *domain.User) DetailModel {
	m.ticket = ticket
	m.assignee = assignee
	m.stale = false
	m.updateViewportContent()
	return m
}

// withStale marks the ticket as no longer present in the feed.
func (m DetailModel) withStale() DetailModel {
	m.stale = true
	return m
}

// Init initializes the detail model
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc":
			return m, func() tea.Msg { return closeDetailMsg{} }
		case "o":
			if m.link == "" {
				m.toast = "No ticket URL configured"
				return m, nil
			}
			if err := openURL(m.link); err != nil {
				m.toast = fmt.Sprintf("Open failed: %v", err)
			}
			return m, nil
		case "j", "down":
			m.viewport.LineDown(1)
			return m, nil
		case "k", "up":
			m.viewport.LineUp(1)
			return m, nil
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// resizeComponents calculates and sets component dimensions
func (m *DetailModel) resizeComponents() {
	leftWidth := m.leftWidth()

	rightWidth := m.width - leftWidth - 3 // gap between panels
	if rightWidth < 30 {
		rightWidth = 30
	}

	contentHeight := m.height - 2 // header + footer
	if contentHeight < 8 {
		contentHeight = 8
	}

	m.viewport.Width = rightWidth - borderSize - 2 // -2 for padding
	m.viewport.Height = contentHeight - borderSize
	m.updateViewportContent()
}

func (m DetailModel) leftWidth() int {
	w := int(float64(m.width) * leftPanelRatio)
	if w < minLeftWidth {
		w = minLeftWidth
	}
	if w > maxLeftWidth {
		w = maxLeftWidth
	}
	return w
}

// updateViewportContent re-wraps the title and tags to the viewport width
func (m *DetailModel) updateViewportContent() {
	width := m.viewport.Width
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(wordwrap.String(m.ticket.Title, width)))
	b.WriteString("\n\n")

	if len(m.ticket.Tag) == 0 {
		b.WriteString(detailLabelStyle.Render("No tags"))
	} else {
		b.WriteString(detailLabelStyle.Render("Tags"))
		for _, tag := range m.ticket.Tag {
			b.WriteString("\n")
			b.WriteString(tagStyle.Render(wordwrap.String(tag, width-2)))
		}
	}

	m.viewport.SetContent(b.String())
}

// View renders the detail view
func (m DetailModel) View() string {
	header := detailTitleStyle.Render(m.ticket.ID)
	if m.stale {
		header += " " + ErrorStyle.Render("(no longer in feed)")
	}
	footer := dimStyle.Render("j/k:scroll o:open q/esc:back")
	if m.toast != "" {
		footer += "  " + ErrorStyle.Render(m.toast)
	}

	left := panelBorderStyle.
		Width(m.leftWidth() - borderSize).
		Padding(0, 1).
		Render(m.renderMetadata())
	right := panelBorderStyle.
		Padding(0, 1).
		Render(m.viewport.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderMetadata renders status, priority and assignee rows
func (m DetailModel) renderMetadata() string {
	statusIcon, statusColor := StatusIcon(m.ticket.Status)
	status := m.ticket.Status
	if status == "" {
		status = "(none)"
	}

	priority := priorityLabelOf(m.ticket)
	priorityIcon, priorityColor := PriorityIcon(priority)

	assignee := "Unassigned"
	if m.ticket.UserID != "" {
		assignee = "Unknown user (" + m.ticket.UserID + ")"
	}
	if m.assignee != nil {
		assignee = avatarStyle.Render(Initials(m.assignee.Name)) + " " + m.assignee.Name
		if m.assignee.Available {
			assignee += " " + availableStyle.Render("• available")
		} else {
			assignee += " " + detailLabelStyle.Render("• away")
		}
	}

	rows := []string{
		row("Status", lipgloss.NewStyle().Foreground(statusColor).Render(statusIcon)+" "+status),
		row("Priority", lipgloss.NewStyle().Foreground(priorityColor).Render(priorityIcon)+" "+priority),
		row("Assignee", assignee),
	}
	return strings.Join(rows, "\n\n")
}

func row(label, value string) string {
	return detailLabelStyle.Render(label) + "\n" + detailValueStyle.Render(value)
}
