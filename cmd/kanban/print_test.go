package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/h0rv/kanban/internal/board"
	"github.com/h0rv/kanban/internal/domain"
	"github.com/h0rv/kanban/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBoard(t *testing.T) {
	snapshot := domain.Snapshot{
		Tickets: []domain.Ticket{
			{ID: "CAM-1", Title: "Update user profile", Status: domain.StatusTodo, Priority: 4, UserID: "usr-1"},
			{ID: "CAM-2", Title: "Add dark mode", Status: domain.StatusTodo, Priority: -1, UserID: "usr-9"},
		},
		Users: []domain.User{{ID: "usr-1", Name: "Anoop sharma"}},
	}
	b := board.Compute(snapshot, domain.GroupByStatus, domain.SortByPriority)

	var buf bytes.Buffer
	require.NoError(t, printBoard(&buf, b, snapshot.Users))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "2 tickets, grouped by Status, ordered by Priority\n"))
	assert.Contains(t, out, "Todo (2)")
	assert.Contains(t, out, "Backlog (0)")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "Anoop sharma")
	assert.Contains(t, out, "usr-9 (unknown)")
	assert.Contains(t, out, "No priority (-1)")

	// Urgent ticket precedes the unmapped one
	assert.Less(t, strings.Index(out, "CAM-1"), strings.Index(out, "CAM-2"))
	// Columns follow board order
	assert.Less(t, strings.Index(out, "Todo (2)"), strings.Index(out, "Backlog (0)"))
}

func TestDisplayFromFlags(t *testing.T) {
	t.Cleanup(func() { groupFlag, sortFlag = "", "" })

	groupFlag, sortFlag = "priority", "title"
	display, err := displayFromFlags(prefs.DefaultDisplay())
	require.NoError(t, err)
	assert.Equal(t, domain.GroupByPriority, display.Grouping)
	assert.Equal(t, domain.SortByTitle, display.Sorting)

	groupFlag, sortFlag = "colour", ""
	_, err = displayFromFlags(prefs.DefaultDisplay())
	assert.ErrorIs(t, err, domain.ErrUnknownDimension)
}
