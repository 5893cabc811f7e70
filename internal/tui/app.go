package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/kanban/internal/api"
	"github.com/h0rv/kanban/internal/domain"
	"github.com/h0rv/kanban/internal/prefs"
	"github.com/h0rv/kanban/internal/store"
)

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenBoard AppScreen = iota
	ScreenDisplay
	ScreenDetail
)

// AppModel is the root Bubble Tea model that manages screen transitions.
// The board is always alive underneath; the display picker and the detail
// view are shown on top of it and close back to it.
type AppModel struct {
	// Dependencies
	store  *store.Store
	prefs  prefs.Store
	logger *slog.Logger
	link   LinkFunc

	// Current state
	currentScreen AppScreen
	overlay       tea.Model // Display picker or detail view, nil on the board
	board         BoardModel
}

// NewAppModel creates the root model. The store's grouping and sorting are the
// starting display settings; prefsStore receives every later change.
func NewAppModel(s *store.Store, source api.Source, prefsStore prefs.Store, logger *slog.Logger, link LinkFunc, ctx context.Context) AppModel {
	if link == nil {
		link = func(string) string { return "" }
	}
	return AppModel{
		store:         s,
		prefs:         prefsStore,
		logger:        logger,
		link:          link,
		currentScreen: ScreenBoard,
		board:         NewBoardModel(s, source, logger, link, ctx),
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return m.board.Init()
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuitMsg:
		return m, tea.Quit

	case snapshotLoadedMsg:
		// Fetches may finish while another screen is open; the board always gets them.
		model, cmd := m.updateBoard(msg)
		m = model.(AppModel)
		// A failed fetch clears the store; the open ticket is left alone then.
		if detail, ok := m.overlay.(DetailModel); ok && m.store.Loaded() {
			m.overlay = m.refreshDetail(detail)
		}
		return m, cmd

	case openDisplayMsg:
		m.currentScreen = ScreenDisplay
		picker := NewDisplayPickerModel(m.store.GetGrouping(), m.store.GetSorting())
		m.overlay = picker
		return m, picker.Init()

	case closeDisplayMsg, closeDetailMsg:
		m.currentScreen = ScreenBoard
		m.overlay = nil
		// Request window size to ensure proper rendering
		return m, tea.WindowSize()

	case DisplaySelectedMsg:
		saveErr := m.applyDisplay(msg)
		m.currentScreen = ScreenBoard
		m.overlay = nil
		model, cmd := m.updateBoard(displayChangedMsg{saveErr: saveErr})
		return model, tea.Batch(cmd, tea.WindowSize())

	case openDetailMsg:
		m.currentScreen = ScreenDetail
		detail := NewDetailModel(msg.ticket, m.assignee(msg.ticket), m.link(msg.ticket.ID))
		m.overlay = detail
		return m, detail.Init()

	case tea.WindowSizeMsg:
		// Every screen tracks the terminal size, visible or not.
		model, cmd := m.updateBoard(msg)
		m = model.(AppModel)
		if m.overlay != nil {
			var overlayCmd tea.Cmd
			m.overlay, overlayCmd = m.overlay.Update(msg)
			cmd = tea.Batch(cmd, overlayCmd)
		}
		return m, cmd
	}

	if m.currentScreen != ScreenBoard && m.overlay != nil {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}
	return m.updateBoard(msg)
}

// updateBoard forwards msg to the board model.
func (m AppModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.board.Update(msg)
	if bm, ok := model.(BoardModel); ok {
		m.board = bm
	}
	return m, cmd
}

// assignee returns the ticket's user, or nil when the user is not in the snapshot.
func (m AppModel) assignee(ticket domain.Ticket) *domain.User {
	user, err := m.store.GetUser(ticket.UserID)
	if err != nil {
		return nil
	}
	return &user
}

// refreshDetail re-reads the open ticket from the new snapshot. A ticket that
// left the feed stays on screen as it was, flagged as stale.
func (m AppModel) refreshDetail(detail DetailModel) DetailModel {
	ticket, err := m.store.GetTicket(detail.ticket.ID)
	if errors.Is(err, store.ErrTicketNotFound) {
		m.logger.Warn("open ticket missing after refresh", "ticket", detail.ticket.ID)
		return detail.withStale()
	}
	return detail.withTicket(ticket, m.assignee(ticket))
}

// applyDisplay recomputes the board for the new setting and persists it.
// Persistence failures are logged and returned; the new setting stays in effect.
func (m AppModel) applyDisplay(msg DisplaySelectedMsg) error {
	var errs []error

	if msg.Grouping != "" {
		m.store.SetGrouping(msg.Grouping)
		m.logger.Info("grouping changed", "grouping", msg.Grouping)
		if err := prefs.SaveGrouping(m.prefs, msg.Grouping); err != nil {
			errs = append(errs, fmt.Errorf("save grouping: %w", err))
		}
	}
	if msg.Sorting != "" {
		m.store.SetSorting(msg.Sorting)
		m.logger.Info("sorting changed", "sorting", msg.Sorting)
		if err := prefs.SaveSorting(m.prefs, msg.Sorting); err != nil {
			errs = append(errs, fmt.Errorf("save sorting: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		m.logger.Error("failed to persist display preference", "error", err)
	}
	return err
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.currentScreen != ScreenBoard && m.overlay != nil {
		return m.overlay.View()
	}
	return m.board.View()
}
