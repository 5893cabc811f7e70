// Package domain defines the normalized types for the ticket board.
// These types mirror the data source payload and carry no presentation concerns.
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownDimension indicates a grouping or sorting name that is not recognized.
var ErrUnknownDimension = errors.New("unknown dimension")

// Ticket is a read-only projection of a ticket returned by the data source.
type Ticket struct {
	ID       string   `json:"id"`       // Ticket identifier (e.g., "CAM-1")
	Title    string   `json:"title"`    // Ticket title
	Tag      []string `json:"tag"`      // Free-form tags (e.g., "Feature Request")
	Status   string   `json:"status"`   // One of StatusSet, but not enforced
	Priority int      `json:"priority"` // Priority code, 0-4 when well-formed
	UserID   string   `json:"userId"`   // Assignee user ID
}

// UnmarshalJSON decodes a ticket, tolerating malformed priorities.
// Integral numbers and numeric strings are accepted; any other value becomes
// PriorityUnmapped so the ticket still groups under "No priority".
func (t *Ticket) UnmarshalJSON(data []byte) error {
	type plain Ticket
	aux := struct {
		*plain
		Priority json.RawMessage `json:"priority"`
	}{plain: (*plain)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Priority = parsePriority(aux.Priority)
	return nil
}

// parsePriority converts a raw priority value to a code. Missing and null are PriorityNone.
func parsePriority(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return PriorityNone
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return PriorityUnmapped
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return PriorityUnmapped
	}
	return int(f)
}

// User is an assignee known to the data source.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Snapshot is the full payload of one fetch: every ticket and every user.
type Snapshot struct {
	Tickets []Ticket `json:"tickets"`
	Users   []User   `json:"users"`
}

// Users is a list of users with lookup helpers.
type Users []User

// Find returns the first user with the given ID.
func (u Users) Find(id string) (User, bool) {
	for _, user := range u {
		if user.ID == id {
			return user, true
		}
	}
	return User{}, false
}

// FindByName returns the first user with the given display name.
func (u Users) FindByName(name string) (User, bool) {
	for _, user := range u {
		if user.Name == name {
			return user, true
		}
	}
	return User{}, false
}

// Status names as reported by the data source.
const (
	StatusBacklog    = "Backlog"
	StatusTodo       = "Todo"
	StatusInProgress = "In progress"
	StatusDone       = "Done"
	StatusCancelled  = "Cancelled"
)

// StatusSet is the ordered set of canonical statuses. Every entry gets a column
// when grouping by status, even when no ticket carries it.
var StatusSet = []string{
	StatusBacklog,
	StatusTodo,
	StatusInProgress,
	StatusDone,
	StatusCancelled,
}

// IsStatus reports whether s is one of the canonical statuses.
func IsStatus(s string) bool {
	for _, status := range StatusSet {
		if status == s {
			return true
		}
	}
	return false
}

// Priority codes.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
	PriorityUrgent = 4

	// PriorityUnmapped stands in for priorities that could not be read.
	PriorityUnmapped = -1
)

// Priority display names.
const (
	LabelNoPriority = "No priority"
	LabelLow        = "Low"
	LabelMedium     = "Medium"
	LabelHigh       = "High"
	LabelUrgent     = "Urgent"
)

// priorityLabels maps each priority code to its display name.
// Exactly five codes, one label each.
var priorityLabels = map[int]string{
	PriorityNone:   LabelNoPriority,
	PriorityLow:    LabelLow,
	PriorityMedium: LabelMedium,
	PriorityHigh:   LabelHigh,
	PriorityUrgent: LabelUrgent,
}

// PriorityLabel returns the display name for a priority code.
func PriorityLabel(code int) (string, bool) {
	label, ok := priorityLabels[code]
	return label, ok
}

// PriorityCode returns the priority code whose display name is label.
func PriorityCode(label string) (int, bool) {
	for code, l := range priorityLabels {
		if l == label {
			return code, true
		}
	}
	return 0, false
}

// PriorityLabels returns every priority display name, ordered by code.
func PriorityLabels() []string {
	return []string{LabelNoPriority, LabelLow, LabelMedium, LabelHigh, LabelUrgent}
}

// GroupingDimension selects the field tickets are bucketed by.
type GroupingDimension string

// Grouping dimensions.
const (
	GroupByStatus   GroupingDimension = "status"
	GroupByPriority GroupingDimension = "priority"
	GroupByUser     GroupingDimension = "user"
)

// Groupings lists every grouping dimension in menu order.
var Groupings = []GroupingDimension{GroupByStatus, GroupByUser, GroupByPriority}

// ParseGrouping converts a stored or user-supplied name to a GroupingDimension.
func ParseGrouping(s string) (GroupingDimension, error) {
	for _, g := range Groupings {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: grouping %q", ErrUnknownDimension, s)
}

// Title returns the capitalized name used in menus and headers.
func (g GroupingDimension) Title() string {
	switch g {
	case GroupByStatus:
		return "Status"
	case GroupByPriority:
		return "Priority"
	case GroupByUser:
		return "User"
	}
	return string(g)
}

// SortDimension selects how tickets are ordered inside a group.
type SortDimension string

// Sort dimensions.
const (
	SortByPriority SortDimension = "priority"
	SortByTitle    SortDimension = "title"
)

// Sortings lists every sort dimension in menu order.
var Sortings = []SortDimension{SortByPriority, SortByTitle}

// ParseSorting converts a stored or user-supplied name to a SortDimension.
func ParseSorting(s string) (SortDimension, error) {
	for _, d := range Sortings {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: sorting %q", ErrUnknownDimension, s)
}

// Title returns the capitalized name used in menus and headers.
func (s SortDimension) Title() string {
	switch s {
	case SortByPriority:
		return "Priority"
	case SortByTitle:
		return "Title"
	}
	return string(s)
}

// Defaults applied when no preference is stored.
const (
	DefaultGrouping = GroupByStatus
	DefaultSorting  = SortByPriority
)
