// Package tui provides Bubble Tea models for the interactive board.
package tui

import "github.com/h0rv/kanban/internal/domain"

// DisplaySelectedMsg is emitted when the user picks a grouping or an ordering.
// Exactly one of the fields is set.
type DisplaySelectedMsg struct {
	Grouping domain.GroupingDimension
	Sorting  domain.SortDimension
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}

// Internal messages.
type (
	// snapshotLoadedMsg carries the result of a fetch. On failure snapshot is empty.
	snapshotLoadedMsg struct {
		snapshot domain.Snapshot
		err      error
	}

	// displayChangedMsg tells the board its store settings changed.
	// saveErr is set when the preference could not be persisted.
	displayChangedMsg struct {
		saveErr error
	}

	openDisplayMsg  struct{}
	closeDisplayMsg struct{}
	openDetailMsg   struct{ ticket domain.Ticket }
	closeDetailMsg  struct{}
)
