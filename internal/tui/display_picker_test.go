package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/kanban/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayPicker_Items(t *testing.T) {
	m := NewDisplayPickerModel(domain.GroupByUser, domain.SortByTitle)

	items := m.list.Items()
	require.Len(t, items, len(domain.Groupings)+len(domain.Sortings))

	var current []string
	for _, it := range items {
		if di := it.(displayItem); di.current {
			current = append(current, di.Title())
		}
	}
	assert.Equal(t, []string{
		"Grouping: " + domain.GroupByUser.Title(),
		"Ordering: " + domain.SortByTitle.Title(),
	}, current)
}

func TestDisplayPicker_Select(t *testing.T) {
	m := NewDisplayPickerModel(domain.GroupByStatus, domain.SortByPriority)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, DisplaySelectedMsg{Grouping: domain.Groupings[0]}, cmd())

	// Move to the first ordering item
	for range domain.Groupings {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = model.(DisplayPickerModel)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, DisplaySelectedMsg{Sorting: domain.Sortings[0]}, cmd())
}

func TestDisplayPicker_Close(t *testing.T) {
	m := NewDisplayPickerModel(domain.GroupByStatus, domain.SortByPriority)

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, keyRunes('q'), keyRunes('d')} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.Equal(t, closeDisplayMsg{}, cmd(), msg.String())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, QuitMsg{}, cmd())
}
