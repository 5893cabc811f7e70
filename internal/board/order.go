package board

import (
	"slices"

	"github.com/h0rv/kanban/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// priorityPrecedence is the column order when grouping by priority:
// "No priority" first, then Urgent down to Low.
var priorityPrecedence = []int{
	domain.PriorityNone,
	domain.PriorityUrgent,
	domain.PriorityHigh,
	domain.PriorityMedium,
	domain.PriorityLow,
}

// precedence returns the position of a priority group key in priorityPrecedence.
// Keys that are not priority labels return -1 and therefore sort first.
func precedence(key string) int {
	code, ok := domain.PriorityCode(key)
	if !ok {
		return -1
	}
	return slices.Index(priorityPrecedence, code)
}

// OrderGroups returns the display order of group keys.
// Priority keys follow the fixed precedence list; every other dimension keeps
// the order keys were given in. The input slice is not modified.
func OrderGroups(keys []string, dimension domain.GroupingDimension) []string {
	ordered := slices.Clone(keys)
	if ordered == nil {
		ordered = []string{}
	}

	if dimension == domain.GroupByPriority {
		slices.SortStableFunc(ordered, func(a, b string) int {
			return precedence(a) - precedence(b)
		})
	}

	return ordered
}

// OrderTickets returns tickets ordered for display inside one group.
// Priority sorts highest first; any other dimension sorts titles ascending with
// an English collator. Equal keys keep their input order.
func OrderTickets(tickets []domain.Ticket, sorting domain.SortDimension) []domain.Ticket {
	ordered := slices.Clone(tickets)
	if ordered == nil {
		ordered = []domain.Ticket{}
	}

	if sorting == domain.SortByPriority {
		slices.SortStableFunc(ordered, func(a, b domain.Ticket) int {
			return b.Priority - a.Priority
		})
		return ordered
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	c := collate.New(language.English)
	slices.SortStableFunc(ordered, func(a, b domain.Ticket) int {
		return c.CompareString(a.Title, b.Title)
	})
	return ordered
}
