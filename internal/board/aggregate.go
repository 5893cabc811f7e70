package board

import "github.com/h0rv/kanban/internal/domain"

// Groups is the bucketed form of a ticket list.
// Keys holds each group key once, in first-seen order; it carries no ordering
// contract and must be passed through OrderGroups before display.
type Groups struct {
	Keys    []string
	Buckets map[string][]domain.Ticket
}

// Aggregate buckets tickets by their group key under dimension.
// Tickets keep their input order inside a bucket. When grouping by status,
// every canonical status without tickets still gets an empty bucket.
func Aggregate(tickets []domain.Ticket, dimension domain.GroupingDimension, users []domain.User) Groups {
	classifier := NewClassifier(dimension, users)
	groups := Groups{
		Keys:    make([]string, 0),
		Buckets: make(map[string][]domain.Ticket),
	}

	for _, ticket := range tickets {
		key := classifier.Key(ticket)
		if _, exists := groups.Buckets[key]; !exists {
			groups.Keys = append(groups.Keys, key)
			groups.Buckets[key] = make([]domain.Ticket, 0, 1)
		}
		groups.Buckets[key] = append(groups.Buckets[key], ticket)
	}

	// Empty priority and user groups are not synthesized.
	if dimension == domain.GroupByStatus {
		for _, status := range domain.StatusSet {
			if _, exists := groups.Buckets[status]; !exists {
				groups.Keys = append(groups.Keys, status)
				groups.Buckets[status] = []domain.Ticket{}
			}
		}
	}

	return groups
}
