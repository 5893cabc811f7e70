package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/h0rv/kanban/internal/board"
	"github.com/h0rv/kanban/internal/domain"
)

// printBoard writes one table per column, in board order.
func printBoard(w io.Writer, b board.Board, users domain.Users) error {
	if _, err := fmt.Fprintf(w, "%d tickets, grouped by %s, ordered by %s\n", b.Len(), b.Grouping.Title(), b.Sorting.Title()); err != nil {
		return err
	}

	for _, col := range b.Columns() {
		if _, err := fmt.Fprintf(w, "\n%s (%d)\n", col.Key, len(col.Tickets)); err != nil {
			return err
		}
		if len(col.Tickets) == 0 {
			if _, err := fmt.Fprintln(w, "  (empty)"); err != nil {
				return err
			}
			continue
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "Title", "Status", "Priority", "Assignee")
		for _, ticket := range col.Tickets {
			t.Row(ticket.ID, ticket.Title, ticket.Status, priorityName(ticket.Priority), assigneeName(ticket.UserID, users))
		}
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

func priorityName(code int) string {
	if label, ok := domain.PriorityLabel(code); ok {
		return label
	}
	return fmt.Sprintf("%s (%d)", domain.LabelNoPriority, code)
}

func assigneeName(id string, users domain.Users) string {
	if user, ok := users.Find(id); ok {
		return user.Name
	}
	if id == "" {
		return "-"
	}
	return id + " (unknown)"
}
