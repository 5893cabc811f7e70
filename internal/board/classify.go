package board

import "github.com/h0rv/kanban/internal/domain"

// Fallback group keys for lookups that miss.
const (
	KeyNoPriority  = domain.LabelNoPriority
	KeyUnknownUser = "Unknown User"
	KeyOther       = "Other"
)

// Classifier maps tickets to group keys under one grouping dimension.
// It indexes users once so classifying a whole snapshot stays linear.
type Classifier struct {
	dimension domain.GroupingDimension
	names     map[string]string // user ID -> name, first occurrence wins
}

// NewClassifier creates a Classifier for the given dimension and user list.
func NewClassifier(dimension domain.GroupingDimension, users []domain.User) Classifier {
	names := make(map[string]string, len(users))
	for _, u := range users {
		if _, seen := names[u.ID]; !seen {
			names[u.ID] = u.Name
		}
	}
	return Classifier{dimension: dimension, names: names}
}

// Key returns the group key of ticket. It never fails: unmapped priorities,
// unknown or unnamed users and empty statuses fall back to fixed keys.
func (c Classifier) Key(ticket domain.Ticket) string {
	switch c.dimension {
	case domain.GroupByPriority:
		if label, ok := domain.PriorityLabel(ticket.Priority); ok {
			return label
		}
		return KeyNoPriority
	case domain.GroupByUser:
		if name, ok := c.names[ticket.UserID]; ok && name != "" {
			return name
		}
		return KeyUnknownUser
	default:
		if ticket.Status == "" {
			return KeyOther
		}
		return ticket.Status
	}
}

// Classify returns the group key of a single ticket.
func Classify(ticket domain.Ticket, dimension domain.GroupingDimension, users []domain.User) string {
	return NewClassifier(dimension, users).Key(ticket)
}
