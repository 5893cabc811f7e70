package store

import (
	"testing"

	"github.com/h0rv/kanban/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func createTestSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Tickets: []domain.Ticket{
			{ID: "CAM-1", Title: "Fix bug", Status: domain.StatusTodo, Priority: 2, UserID: "usr-1"},
			{ID: "CAM-2", Title: "Add feature", Status: domain.StatusInProgress, Priority: 4, UserID: "usr-2"},
			{ID: "CAM-3", Title: "Draft task", Status: "", Priority: 0, UserID: "usr-9"},
			{ID: "CAM-4", Title: "Another bug", Status: domain.StatusTodo, Priority: 3, UserID: "usr-1"},
		},
		Users: []domain.User{
			{ID: "usr-1", Name: "Anoop sharma", Available: true},
			{ID: "usr-2", Name: "Yogesh"},
		},
	}
}

// TestNew verifies store initialization
func TestNew(t *testing.T) {
	s := New(domain.GroupByStatus, domain.SortByPriority)
	require.NotNil(t, s)
	assert.False(t, s.Loaded())
	assert.Equal(t, domain.GroupByStatus, s.GetGrouping())
	assert.Equal(t, domain.SortByPriority, s.GetSorting())

	// Empty store still renders the canonical status columns
	assert.Equal(t, domain.StatusSet, s.Board().Order)
}

func TestSetSnapshot(t *testing.T) {
	s := New(domain.GroupByStatus, domain.SortByPriority)
	s.SetSnapshot(createTestSnapshot())

	assert.True(t, s.Loaded())

	b := s.Board()
	todo, ok := b.Tickets(domain.StatusTodo)
	require.True(t, ok)
	require.Len(t, todo, 2)
	assert.Equal(t, "CAM-4", todo[0].ID, "priority 3 before priority 2")
	assert.Equal(t, "CAM-1", todo[1].ID)

	other, ok := b.Tickets("Other")
	require.True(t, ok)
	assert.Len(t, other, 1)
}

func TestSetSnapshot_CopiesInput(t *testing.T) {
	snapshot := createTestSnapshot()
	s := New(domain.GroupByStatus, domain.SortByTitle)
	s.SetSnapshot(snapshot)

	snapshot.Tickets[0].Title = "Mutated"

	ticket, err := s.GetTicket("CAM-1")
	require.NoError(t, err)
	assert.Equal(t, "Fix bug", ticket.Title)
}

func TestSetGrouping_Recomputes(t *testing.T) {
	s := New(domain.GroupByStatus, domain.SortByPriority)
	s.SetSnapshot(createTestSnapshot())

	s.SetGrouping(domain.GroupByUser)
	assert.Equal(t, []string{"Anoop sharma", "Yogesh", "Unknown User"}, s.Board().Order)

	s.SetGrouping(domain.GroupByPriority)
	assert.Equal(t, []string{"No priority", "Urgent", "High", "Medium"}, s.Board().Order)
	assert.Equal(t, domain.GroupByPriority, s.Board().Grouping)
}

func TestSetSorting_Recomputes(t *testing.T) {
	s := New(domain.GroupByStatus, domain.SortByPriority)
	s.SetSnapshot(createTestSnapshot())

	s.SetSorting(domain.SortByTitle)

	todo, _ := s.Board().Tickets(domain.StatusTodo)
	require.Len(t, todo, 2)
	assert.Equal(t, "Another bug", todo[0].Title)
	assert.Equal(t, domain.SortByTitle, s.Board().Sorting)
}

func TestGetTicket(t *testing.T) {
	s := New(domain.GroupByStatus, domain.SortByPriority)
	s.SetSnapshot(createTestSnapshot())

	t.Run("existing ticket", func(t *testing.T) {
		ticket, err := s.GetTicket("CAM-2")
		require.NoError(t, err)
		assert.Equal(t, "Add feature", ticket.Title)
	})

	t.Run("nonexistent ticket", func(t *testing.T) {
		_, err := s.GetTicket("nonexistent")
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}

func TestGetUser(t *testing.T) {
	s := New(domain.GroupByStatus, domain.SortByPriority)
	s.SetSnapshot(createTestSnapshot())

	user, err := s.GetUser("usr-1")
	require.NoError(t, err)
	assert.Equal(t, "Anoop sharma", user.Name)

	_, err = s.GetUser("usr-9")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClear(t *testing.T) {
	s := New(domain.GroupByUser, domain.SortByTitle)
	s.SetSnapshot(createTestSnapshot())

	s.Clear()

	assert.False(t, s.Loaded())
	assert.Equal(t, domain.GroupByUser, s.GetGrouping(), "settings survive Clear")
	assert.Empty(t, s.Board().Order)
	assert.Equal(t, 0, s.Board().Len())
	_, err := s.GetTicket("CAM-1")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}
