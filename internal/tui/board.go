package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/kanban/internal/api"
	"github.com/h0rv/kanban/internal/domain"
	"github.com/h0rv/kanban/internal/store"
	"github.com/pkg/browser"
)

// Layout constants
const (
	minColumnWidth = 24
	maxColumnWidth = 40
	headerLines    = 2  // Title line + hints line
	pageJumpSize   = 10 // Number of tickets to jump with Ctrl+D/U
)

// Styles for the board view - base styles without width/height (set dynamically)
var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	titleStyle = lipgloss.NewStyle().
			Bold(true)
)

// LinkFunc builds a browser URL for a ticket ID. An empty result means no link.
type LinkFunc func(ticketID string) string

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// BoardModel represents the main kanban board view
type BoardModel struct {
	// Dependencies
	store  *store.Store
	source api.Source
	logger *slog.Logger
	link   LinkFunc
	ctx    context.Context

	// UI components
	keymap      KeyMap
	help        HelpModel
	spinner     spinner.Model
	filterInput textinput.Model

	// Board state
	columns        []string                   // Group keys in display order
	filtered       map[string][]domain.Ticket // Group key -> visible tickets
	selectedColumn int                        // Currently selected column
	columnOffset   int                        // Horizontal scroll offset (first visible column index)
	selectedCard   map[string]int             // Group key -> selected ticket index
	scrollOffset   map[string]int             // Group key -> scroll offset

	// View state
	width      int
	height     int
	showHelp   bool
	filterMode bool
	filterText string
	loading    bool
	errorToast string
}

// NewBoardModel creates a new board model
func NewBoardModel(s *store.Store, source api.Source, logger *slog.Logger, link LinkFunc, ctx context.Context) BoardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "

	if link == nil {
		link = func(string) string { return "" }
	}

	m := BoardModel{
		store:        s,
		source:       source,
		logger:       logger,
		link:         link,
		ctx:          ctx,
		keymap:       DefaultKeyMap(),
		help:         NewHelpModel(DefaultKeyMap()),
		spinner:      sp,
		filterInput:  ti,
		filtered:     make(map[string][]domain.Ticket),
		selectedCard: make(map[string]int),
		scrollOffset: make(map[string]int),
		loading:      !s.Loaded(),
	}
	m.rebuildColumns()
	m.applyFilter()
	return m
}

// Init starts the spinner and, if no snapshot is loaded yet, the fetch.
func (m BoardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tea.WindowSize()}
	if !m.store.Loaded() {
		cmds = append(cmds, m.fetch())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// The snapshot stays empty; status grouping still shows its columns.
			m.logger.Error("failed to fetch tickets", "error", msg.err)
			m.errorToast = fmt.Sprintf("Fetch failed: %v", msg.err)
			m.store.Clear()
		} else {
			m.logger.Info("tickets loaded", "tickets", len(msg.snapshot.Tickets), "users", len(msg.snapshot.Users))
			m.errorToast = ""
			m.store.SetSnapshot(msg.snapshot)
		}
		(&m).rebuildColumns()
		(&m).applyFilter()
		return m, nil

	case displayChangedMsg:
		if msg.saveErr != nil {
			m.errorToast = fmt.Sprintf("Could not save preference: %v", msg.saveErr)
		}
		m.selectedColumn = 0
		m.columnOffset = 0
		(&m).rebuildColumns()
		(&m).applyFilter()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Filter mode
	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterInput.Blur()
			m.filterText = m.filterInput.Value()
			(&m).applyFilter()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.Blur()
			m.filterInput.SetValue(m.filterText)
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	// Normal navigation
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
	case key.Matches(msg, m.keymap.Filter):
		m.filterMode = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Left):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			(&m).adjustColumnScroll()
		}
	case key.Matches(msg, m.keymap.Right):
		if m.selectedColumn < len(m.columns)-1 {
			m.selectedColumn++
			(&m).adjustColumnScroll()
		}
	case key.Matches(msg, m.keymap.Down):
		(&m).moveCardSelection(1)
	case key.Matches(msg, m.keymap.Up):
		(&m).moveCardSelection(-1)
	case key.Matches(msg, m.keymap.Top):
		(&m).jumpToCard(0)
	case key.Matches(msg, m.keymap.Bottom):
		(&m).jumpToCard(-1)
	case key.Matches(msg, m.keymap.PageDown):
		(&m).moveCardSelection(pageJumpSize)
	case key.Matches(msg, m.keymap.PageUp):
		(&m).moveCardSelection(-pageJumpSize)
	case key.Matches(msg, m.keymap.Open):
		if ticket, ok := m.getSelectedTicket(); ok {
			if url := m.link(ticket.ID); url != "" {
				if err := openURL(url); err != nil {
					m.logger.Warn("cannot open browser", "url", url, "error", err)
					m.errorToast = fmt.Sprintf("Open failed: %v", err)
				}
			} else {
				m.errorToast = "No ticket URL configured"
			}
		}
	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		m.errorToast = ""
		return m, m.fetch()
	case key.Matches(msg, m.keymap.Display):
		return m, func() tea.Msg { return openDisplayMsg{} }
	case key.Matches(msg, m.keymap.CycleGroup):
		next := nextGrouping(m.store.GetGrouping())
		return m, func() tea.Msg { return DisplaySelectedMsg{Grouping: next} }
	case key.Matches(msg, m.keymap.CycleSort):
		next := nextSorting(m.store.GetSorting())
		return m, func() tea.Msg { return DisplaySelectedMsg{Sorting: next} }
	case key.Matches(msg, m.keymap.Detail):
		if ticket, ok := m.getSelectedTicket(); ok {
			return m, func() tea.Msg { return openDetailMsg{ticket: ticket} }
		}
	}

	return m, nil
}

// View renders the board - fills entire terminal exactly
func (m BoardModel) View() string {
	// Use sensible defaults if dimensions not yet set
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var sections []string

	// === HEADER (title + status) ===
	sections = append(sections, m.renderHeader(width))

	// === SECOND HEADER LINE (navigation hints + position) ===
	sections = append(sections, m.renderSecondHeader(width))

	// === FILTER INPUT (if active) ===
	if m.filterMode {
		sections = append(sections, m.filterInput.View())
	}

	boardHeight := height - headerLines
	if m.filterMode {
		boardHeight--
	}
	if boardHeight < 5 {
		boardHeight = 5
	}

	// === MAIN CONTENT ===
	var mainContent string
	if m.showHelp {
		helpContent := m.help.View(width, m.store.GetGrouping(), m.store.GetSorting())
		helpLines := strings.Split(helpContent, "\n")
		if len(helpLines) > boardHeight {
			helpLines = helpLines[:boardHeight]
		}
		mainContent = strings.Join(helpLines, "\n")
	} else if m.loading && !m.store.Loaded() {
		loadingMsg := m.spinner.View() + " Loading tickets..."
		mainContent = lipgloss.Place(width, boardHeight, lipgloss.Center, lipgloss.Center, loadingMsg)
	} else if len(m.columns) == 0 {
		emptyMsg := "No tickets. Press 'r' to refetch."
		mainContent = lipgloss.Place(width, boardHeight, lipgloss.Center, lipgloss.Center, emptyMsg)
	} else {
		mainContent = m.renderBoard(width, boardHeight)
	}
	sections = append(sections, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title on the left and board status on the right
func (m BoardModel) renderHeader(width int) string {
	title := fmt.Sprintf("Board (grouped by %s, ordered by %s)", m.store.GetGrouping().Title(), m.store.GetSorting().Title())

	var statusParts []string
	if m.loading {
		statusParts = append(statusParts, m.spinner.View()+"loading")
	}

	total := m.store.Board().Len()
	if m.filterText != "" {
		shown := 0
		for _, tickets := range m.filtered {
			shown += len(tickets)
		}
		statusParts = append(statusParts, fmt.Sprintf("%d/%d tickets", shown, total))
		statusParts = append(statusParts, fmt.Sprintf("/%s", m.filterText))
	} else {
		statusParts = append(statusParts, fmt.Sprintf("%d tickets", total))
	}
	statusParts = append(statusParts, "[d]isplay [?]help")

	status := strings.Join(statusParts, " | ")

	padding := width - lipgloss.Width(title) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}

	return titleStyle.Render(title) + strings.Repeat(" ", padding) + dimStyle.Render(status)
}

// renderSecondHeader renders navigation hints and position info
func (m BoardModel) renderSecondHeader(width int) string {
	left := "h/l:col j/k:ticket enter:view c:group s:order"

	right := ""
	if m.errorToast != "" {
		right = ErrorStyle.Render(m.errorToast)
	} else if len(m.columns) > 0 {
		colKey := m.columns[m.selectedColumn]
		tickets := m.filtered[colKey]

		colPos := fmt.Sprintf("col %d/%d", m.selectedColumn+1, len(m.columns))
		if len(tickets) > 0 {
			right = fmt.Sprintf("%s | ticket %d/%d", colPos, m.selectedCard[colKey]+1, len(tickets))
		} else {
			right = colPos
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return dimStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderBoard renders the kanban columns within the given dimensions
// Implements horizontal scrolling (carousel) when columns overflow
func (m BoardModel) renderBoard(totalWidth, totalHeight int) string {
	numCols := len(m.columns)
	if numCols == 0 {
		return ""
	}

	// lipgloss Border adds 2 lines (top + bottom) to the content height
	colContentHeight := totalHeight - 2
	if colContentHeight < 3 {
		colContentHeight = 3
	}

	visibleCols := m.visibleColumns(totalWidth)

	colWidth := totalWidth / visibleCols
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	// Content width inside column (2 border + 2 padding)
	innerWidth := colWidth - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	startCol := m.columnOffset
	endCol := startCol + visibleCols
	if endCol > numCols {
		endCol = numCols
		startCol = endCol - visibleCols
		if startCol < 0 {
			startCol = 0
		}
	}

	columnViews := make([]string, 0, visibleCols+2)

	if startCol > 0 {
		columnViews = append(columnViews, scrollIndicator("◀", colContentHeight+2))
	}

	for i := startCol; i < endCol; i++ {
		columnViews = append(columnViews, m.renderColumn(m.columns[i], i == m.selectedColumn, colWidth, colContentHeight, innerWidth))
	}

	if endCol < numCols {
		columnViews = append(columnViews, scrollIndicator("▶", colContentHeight+2))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

func scrollIndicator(arrow string, height int) string {
	return lipgloss.NewStyle().
		Width(2).
		Height(height).
		Foreground(lipgloss.Color("205")).
		Align(lipgloss.Center, lipgloss.Center).
		Render(arrow)
}

// renderColumn renders a single column with proper sizing.
// innerHeight is the content area, not including the border.
func (m BoardModel) renderColumn(colKey string, selected bool, width, innerHeight, innerWidth int) string {
	tickets := m.filtered[colKey]
	header := HeaderFor(m.store.GetGrouping(), colKey, m.store.Users())

	scrollOffset := m.scrollOffset[colKey]
	selectedIdx := m.selectedCard[colKey]

	// One line for the header
	cardSlots := innerHeight - 1
	if cardSlots < 1 {
		cardSlots = 1
	}

	needUpIndicator := scrollOffset > 0
	availableSlots := cardSlots
	if needUpIndicator {
		availableSlots--
	}

	endIdx := scrollOffset + availableSlots
	if endIdx > len(tickets) {
		endIdx = len(tickets)
	}

	needDownIndicator := false
	if endIdx < len(tickets) {
		needDownIndicator = true
		availableSlots--
		endIdx = scrollOffset + availableSlots
		if endIdx > len(tickets) {
			endIdx = len(tickets)
		}
	}

	lines := []string{header.Render(len(tickets), innerWidth)}

	if needUpIndicator {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↑ %d more", scrollOffset)))
	}

	for i := scrollOffset; i < endIdx; i++ {
		cardText := m.formatCard(tickets[i], innerWidth-2) // 2 for "> " or "  " prefix
		if selected && i == selectedIdx {
			lines = append(lines, selectedCardStyle.Render("> ")+cardText)
		} else {
			lines = append(lines, cardStyle.Render("  ")+cardText)
		}
	}

	if remaining := len(tickets) - endIdx; needDownIndicator && remaining > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	if len(tickets) == 0 {
		lines = append(lines, dimStyle.Render("(empty)"))
	}

	borderColor := lipgloss.Color("240")
	if selected {
		borderColor = lipgloss.Color("205")
	}

	// Height sets the content height; the border adds 2 more lines.
	// Do not use MaxHeight, it truncates the border.
	colStyle := lipgloss.NewStyle().
		Width(width - 2).
		Height(innerHeight).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	return colStyle.Render(strings.Join(lines, "\n"))
}

// formatCard formats one ticket as "marker title ... ID-AV".
// The marker shows whichever of status or priority is not the grouping dimension.
func (m BoardModel) formatCard(ticket domain.Ticket, maxWidth int) string {
	var marker string
	var color lipgloss.Color
	if m.store.GetGrouping() == domain.GroupByPriority {
		marker, color = StatusIcon(ticket.Status)
	} else {
		marker, color = PriorityIcon(priorityLabelOf(ticket))
	}

	suffix := ticket.ID
	if m.store.GetGrouping() != domain.GroupByUser {
		if user, err := m.store.GetUser(ticket.UserID); err == nil {
			suffix += " " + Initials(user.Name)
		}
	}

	markerWidth := lipgloss.Width(marker)
	suffixWidth := lipgloss.Width(suffix)
	available := maxWidth - markerWidth - suffixWidth - 2
	if available < 5 {
		available = 5
	}

	title := truncate(ticket.Title, available)
	padding := maxWidth - markerWidth - 1 - lipgloss.Width(title) - suffixWidth
	if padding < 1 {
		padding = 1
	}

	return lipgloss.NewStyle().Foreground(color).Render(marker) + " " +
		cardStyle.Render(title) + strings.Repeat(" ", padding) + dimStyle.Render(suffix)
}

// rebuildColumns takes the column order from the store's board
func (m *BoardModel) rebuildColumns() {
	m.columns = append([]string(nil), m.store.Board().Order...)

	if m.selectedColumn >= len(m.columns) {
		m.selectedColumn = 0
	}
	if m.columnOffset > m.selectedColumn {
		m.columnOffset = m.selectedColumn
	}
}

// applyFilter narrows each column to tickets whose title or ID contains the filter text.
// Ticket order within a column is left as the board computed it.
func (m *BoardModel) applyFilter() {
	b := m.store.Board()
	needle := strings.ToLower(m.filterText)

	m.filtered = make(map[string][]domain.Ticket, len(m.columns))
	for _, colKey := range m.columns {
		tickets, _ := b.Tickets(colKey)
		visible := make([]domain.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if needle != "" &&
				!strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.ID), needle) {
				continue
			}
			visible = append(visible, t)
		}
		m.filtered[colKey] = visible
	}

	// Reset scroll offsets and clamp selection to the new contents
	for colKey, tickets := range m.filtered {
		m.scrollOffset[colKey] = 0
		if m.selectedCard[colKey] >= len(tickets) {
			if len(tickets) > 0 {
				m.selectedCard[colKey] = len(tickets) - 1
			} else {
				m.selectedCard[colKey] = 0
			}
		}
	}
}

// moveCardSelection moves the ticket selection up or down by delta
func (m *BoardModel) moveCardSelection(delta int) {
	if len(m.columns) == 0 {
		return
	}

	colKey := m.columns[m.selectedColumn]
	tickets := m.filtered[colKey]
	if len(tickets) == 0 {
		return
	}

	newIdx := m.selectedCard[colKey] + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(tickets) {
		newIdx = len(tickets) - 1
	}

	m.selectedCard[colKey] = newIdx
	m.adjustScroll(colKey)
}

// jumpToCard jumps to a specific ticket index. Use -1 to jump to the last ticket.
func (m *BoardModel) jumpToCard(idx int) {
	if len(m.columns) == 0 {
		return
	}

	colKey := m.columns[m.selectedColumn]
	tickets := m.filtered[colKey]
	if len(tickets) == 0 {
		return
	}

	if idx < 0 || idx >= len(tickets) {
		idx = len(tickets) - 1
	}

	m.selectedCard[colKey] = idx
	m.adjustScroll(colKey)
}

// adjustScroll ensures the selected ticket is visible
func (m *BoardModel) adjustScroll(colKey string) {
	selectedIdx := m.selectedCard[colKey]
	scrollOffset := m.scrollOffset[colKey]

	contentHeight := m.height - headerLines - 2 // 2 for column borders
	if m.filterMode {
		contentHeight--
	}
	visibleCards := contentHeight - 3 // header + potential scroll indicators
	if visibleCards < 3 {
		visibleCards = 3
	}

	if selectedIdx < scrollOffset {
		m.scrollOffset[colKey] = selectedIdx
	}
	if selectedIdx >= scrollOffset+visibleCards {
		m.scrollOffset[colKey] = selectedIdx - visibleCards + 1
	}
}

// visibleColumns returns how many columns fit in width
func (m BoardModel) visibleColumns(width int) int {
	visible := width / minColumnWidth
	if visible < 1 {
		visible = 1
	}
	if visible > len(m.columns) {
		visible = len(m.columns)
	}
	return visible
}

// adjustColumnScroll ensures the selected column is visible (horizontal carousel)
func (m *BoardModel) adjustColumnScroll() {
	if len(m.columns) == 0 || m.width == 0 {
		return
	}

	visibleCols := m.visibleColumns(m.width)

	if m.selectedColumn < m.columnOffset {
		m.columnOffset = m.selectedColumn
	}
	if m.selectedColumn >= m.columnOffset+visibleCols {
		m.columnOffset = m.selectedColumn - visibleCols + 1
	}
}

// getSelectedTicket returns the currently selected ticket
func (m BoardModel) getSelectedTicket() (domain.Ticket, bool) {
	if len(m.columns) == 0 {
		return domain.Ticket{}, false
	}

	colKey := m.columns[m.selectedColumn]
	tickets := m.filtered[colKey]
	if len(tickets) == 0 {
		return domain.Ticket{}, false
	}

	idx := m.selectedCard[colKey]
	if idx >= len(tickets) {
		idx = 0
	}
	return tickets[idx], true
}

// fetch loads the snapshot from the data source once.
// There is no retry; a failure is reported in the resulting message.
func (m BoardModel) fetch() tea.Cmd {
	source := m.source
	ctx := m.ctx
	return func() tea.Msg {
		if source == nil {
			return snapshotLoadedMsg{err: fmt.Errorf("no data source configured")}
		}
		snapshot, err := source.Fetch(ctx)
		if err != nil {
			return snapshotLoadedMsg{err: err}
		}
		return snapshotLoadedMsg{snapshot: snapshot}
	}
}

// nextGrouping returns the grouping after g in menu order.
func nextGrouping(g domain.GroupingDimension) domain.GroupingDimension {
	for i, candidate := range domain.Groupings {
		if candidate == g {
			return domain.Groupings[(i+1)%len(domain.Groupings)]
		}
	}
	return domain.DefaultGrouping
}

// nextSorting returns the sorting after s in menu order.
func nextSorting(s domain.SortDimension) domain.SortDimension {
	for i, candidate := range domain.Sortings {
		if candidate == s {
			return domain.Sortings[(i+1)%len(domain.Sortings)]
		}
	}
	return domain.DefaultSorting
}
