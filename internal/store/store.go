// Package store holds the in-memory ticket snapshot and the board computed from it.
// Any change to the snapshot or to the display settings recomputes the board
// wholesale; nothing is patched incrementally.
package store

import (
	"errors"

	"github.com/h0rv/kanban/internal/board"
	"github.com/h0rv/kanban/internal/domain"
)

var (
	// ErrTicketNotFound indicates the requested ticket does not exist.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Store manages the current snapshot and display settings.
// It is not safe for concurrent use; the TUI mutates it from its update loop only.
type Store struct {
	// Snapshot data
	tickets []domain.Ticket
	users   domain.Users
	index   map[string]int // ticket ID -> position in tickets
	loaded  bool

	// Display settings
	grouping domain.GroupingDimension
	sorting  domain.SortDimension

	// Derived board, replaced on every change
	board board.Board
}

// New creates an empty Store with the given display settings.
func New(grouping domain.GroupingDimension, sorting domain.SortDimension) *Store {
	s := &Store{
		index:    make(map[string]int),
		grouping: grouping,
		sorting:  sorting,
	}
	s.rebuild()
	return s
}

// SetSnapshot replaces all tickets and users and recomputes the board.
func (s *Store) SetSnapshot(snapshot domain.Snapshot) {
	s.tickets = append([]domain.Ticket(nil), snapshot.Tickets...)
	s.users = append(domain.Users(nil), snapshot.Users...)
	s.index = make(map[string]int, len(s.tickets))
	for i, t := range s.tickets {
		if _, dup := s.index[t.ID]; !dup {
			s.index[t.ID] = i
		}
	}
	s.loaded = true
	s.rebuild()
}

// Loaded reports whether a snapshot has been set since the last Clear.
func (s *Store) Loaded() bool {
	return s.loaded
}

// SetGrouping changes the grouping dimension and recomputes the board.
func (s *Store) SetGrouping(grouping domain.GroupingDimension) {
	s.grouping = grouping
	s.rebuild()
}

// GetGrouping returns the current grouping dimension.
func (s *Store) GetGrouping() domain.GroupingDimension {
	return s.grouping
}

// SetSorting changes the sort dimension and recomputes the board.
func (s *Store) SetSorting(sorting domain.SortDimension) {
	s.sorting = sorting
	s.rebuild()
}

// GetSorting returns the current sort dimension.
func (s *Store) GetSorting() domain.SortDimension {
	return s.sorting
}

// Board returns the board computed from the current snapshot and settings.
func (s *Store) Board() board.Board {
	return s.board
}

// GetTicket retrieves a ticket by ID, returning ErrTicketNotFound if not found.
func (s *Store) GetTicket(id string) (domain.Ticket, error) {
	i, ok := s.index[id]
	if !ok {
		return domain.Ticket{}, ErrTicketNotFound
	}
	return s.tickets[i], nil
}

// GetUser retrieves a user by ID, returning ErrUserNotFound if not found.
func (s *Store) GetUser(id string) (domain.User, error) {
	user, ok := s.users.Find(id)
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

// Users returns the current user list.
func (s *Store) Users() domain.Users {
	return s.users
}

// Clear drops the snapshot, keeping display settings.
func (s *Store) Clear() {
	s.tickets = nil
	s.users = nil
	s.index = make(map[string]int)
	s.loaded = false
	s.rebuild()
}

// rebuild recomputes the board from scratch.
func (s *Store) rebuild() {
	s.board = board.Compute(domain.Snapshot{Tickets: s.tickets, Users: s.users}, s.grouping, s.sorting)
}
