// Package board turns a flat ticket snapshot into ordered, labeled columns.
// Grouping and sorting are explicit inputs; every call recomputes the board
// from scratch and shares no state with earlier calls.
package board

import "github.com/h0rv/kanban/internal/domain"

// Column is one rendered group: its key and its ordered tickets.
type Column struct {
	Key     string
	Tickets []domain.Ticket
}

// Board is the result of one pipeline run.
type Board struct {
	Grouping domain.GroupingDimension
	Sorting  domain.SortDimension

	// Groups maps each group key to its ordered tickets.
	Groups map[string][]domain.Ticket
	// Order lists the group keys in display order.
	Order []string
}

// Compute runs classify, aggregate and order over a snapshot.
func Compute(snapshot domain.Snapshot, grouping domain.GroupingDimension, sorting domain.SortDimension) Board {
	groups := Aggregate(snapshot.Tickets, grouping, snapshot.Users)

	ordered := make(map[string][]domain.Ticket, len(groups.Buckets))
	for key, tickets := range groups.Buckets {
		ordered[key] = OrderTickets(tickets, sorting)
	}

	return Board{
		Grouping: grouping,
		Sorting:  sorting,
		Groups:   ordered,
		Order:    OrderGroups(groups.Keys, grouping),
	}
}

// Columns returns the groups in display order.
func (b Board) Columns() []Column {
	columns := make([]Column, 0, len(b.Order))
	for _, key := range b.Order {
		columns = append(columns, Column{Key: key, Tickets: b.Groups[key]})
	}
	return columns
}

// Tickets returns the ordered tickets of one group.
func (b Board) Tickets(key string) ([]domain.Ticket, bool) {
	tickets, ok := b.Groups[key]
	return tickets, ok
}

// Len returns the number of tickets across all groups.
func (b Board) Len() int {
	total := 0
	for _, tickets := range b.Groups {
		total += len(tickets)
	}
	return total
}
