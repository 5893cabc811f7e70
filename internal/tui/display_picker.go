package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/kanban/internal/domain"
)

// displayItem is one choice in the display menu: either a grouping or an ordering.
type displayItem struct {
	grouping domain.GroupingDimension
	sorting  domain.SortDimension
	current  bool
}

func (i displayItem) FilterValue() string {
	return i.Title()
}

func (i displayItem) Title() string {
	if i.grouping != "" {
		return "Grouping: " + i.grouping.Title()
	}
	return "Ordering: " + i.sorting.Title()
}

func (i displayItem) Description() string {
	if i.current {
		return "current"
	}
	return ""
}

// displayDelegate is a custom item delegate for display items.
type displayDelegate struct{}

func (d displayDelegate) Height() int                             { return 1 }
func (d displayDelegate) Spacing() int                            { return 0 }
func (d displayDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d displayDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(displayItem)
	if !ok {
		return
	}

	str := i.Title()
	if i.current {
		str += " " + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("✓")
	}

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
	}
}

// DisplayPickerModel lets the user choose the grouping and ordering of the board.
type DisplayPickerModel struct {
	list list.Model
}

// NewDisplayPickerModel creates a picker with the current choices marked.
func NewDisplayPickerModel(grouping domain.GroupingDimension, sorting domain.SortDimension) DisplayPickerModel {
	items := make([]list.Item, 0, len(domain.Groupings)+len(domain.Sortings))
	for _, g := range domain.Groupings {
		items = append(items, displayItem{grouping: g, current: g == grouping})
	}
	for _, s := range domain.Sortings {
		items = append(items, displayItem{sorting: s, current: s == sorting})
	}

	l := list.New(items, displayDelegate{}, 40, 12)
	l.Title = "Display"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle

	return DisplayPickerModel{list: l}
}

// Init initializes the model.
func (m DisplayPickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m DisplayPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, func() tea.Msg { return QuitMsg{} }
		case "q", "esc", "d":
			return m, func() tea.Msg { return closeDisplayMsg{} }
		case "enter":
			if item, ok := m.list.SelectedItem().(displayItem); ok {
				return m, func() tea.Msg {
					return DisplaySelectedMsg{Grouping: item.grouping, Sorting: item.sorting}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m DisplayPickerModel) View() string {
	return m.list.View()
}
