package board

import (
	"testing"

	"github.com/h0rv/kanban/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	users := []domain.User{
		{ID: "u1", Name: "Alice"},
		{ID: "u1", Name: "Shadowed"},
		{ID: "u3", Name: ""},
		{ID: "u3", Name: "Named later"},
	}

	tests := []struct {
		name      string
		ticket    domain.Ticket
		dimension domain.GroupingDimension
		want      string
	}{
		{"priority mapped", domain.Ticket{Priority: 3}, domain.GroupByPriority, "High"},
		{"priority zero", domain.Ticket{Priority: 0}, domain.GroupByPriority, "No priority"},
		{"priority unmapped", domain.Ticket{Priority: 9}, domain.GroupByPriority, "No priority"},
		{"priority negative", domain.Ticket{Priority: -2}, domain.GroupByPriority, "No priority"},
		{"user found", domain.Ticket{UserID: "u1"}, domain.GroupByUser, "Alice"},
		{"user missing", domain.Ticket{UserID: "u2"}, domain.GroupByUser, "Unknown User"},
		{"user empty id", domain.Ticket{}, domain.GroupByUser, "Unknown User"},
		{"user with empty name", domain.Ticket{UserID: "u3"}, domain.GroupByUser, "Unknown User"},
		{"status verbatim", domain.Ticket{Status: "Done"}, domain.GroupByStatus, "Done"},
		{"status non canonical", domain.Ticket{Status: "Blocked"}, domain.GroupByStatus, "Blocked"},
		{"status empty", domain.Ticket{}, domain.GroupByStatus, "Other"},
		{"unknown dimension uses status", domain.Ticket{Status: "Todo"}, domain.GroupingDimension("tag"), "Todo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ticket, tt.dimension, users))
		})
	}
}

func TestClassify_NoUsers(t *testing.T) {
	assert.Equal(t, KeyUnknownUser, Classify(domain.Ticket{UserID: "u1"}, domain.GroupByUser, nil))
}

func TestAggregate_KeepsInputOrderWithinBucket(t *testing.T) {
	tickets := []domain.Ticket{
		{ID: "1", Status: "Todo"},
		{ID: "2", Status: "Done"},
		{ID: "3", Status: "Todo"},
		{ID: "4", Status: "Todo"},
	}

	groups := Aggregate(tickets, domain.GroupByStatus, nil)

	assert.Equal(t, []string{"1", "3", "4"}, ticketIDs(groups.Buckets["Todo"]))
	assert.Equal(t, []string{"2"}, ticketIDs(groups.Buckets["Done"]))
	assert.Equal(t, []string{"Todo", "Done", "Backlog", "In progress", "Cancelled"}, groups.Keys)
}

func TestAggregate_NoSynthesisForUser(t *testing.T) {
	groups := Aggregate([]domain.Ticket{{ID: "1", UserID: "u1"}}, domain.GroupByUser, []domain.User{{ID: "u1", Name: "Alice"}, {ID: "u2", Name: "Bob"}})

	assert.Equal(t, []string{"Alice"}, groups.Keys)
	_, hasBob := groups.Buckets["Bob"]
	assert.False(t, hasBob)
}
