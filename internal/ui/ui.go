package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/questlog/internal/collection"
	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/shared"
	"github.com/desertthunder/questlog/internal/views"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BoardView ViewState = iota
	LibraryView
	DashboardView
	SearchView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	store    *collection.Store
	searcher *collection.Searcher
	logger   *log.Logger
	debounce time.Duration
	pageSize int

	width  int
	height int
	help   help.Model
	keys   keyMap
	notice string
	err    error

	layout boardLayout
	drag   *DragController
	selCol int
	selRow int

	library libraryState
	search  searchState
	detail  detailForm
}

type collectionLoadedMsg struct {
	err error
}

type statusSavedMsg struct {
	id        string
	prior     models.Status
	attempted models.Status
	entry     *models.CollectionEntry
	err       error
}

type entrySavedMsg struct {
	entry *models.CollectionEntry
	err   error
}

type entryRemovedMsg struct {
	id  string
	err error
}

type gameAddedMsg struct {
	entry *models.CollectionEntry
	err   error
}

type searchTickMsg struct {
	seq int
}

type searchResultsMsg collection.SearchResult

// ModelOpts carries the TUI's dependencies.
type ModelOpts struct {
	Store    *collection.Store
	Searcher *collection.Searcher
	Logger   *log.Logger
	Debounce time.Duration
	PageSize int
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 9
	}

	m := &Model{
		ctx:      ctx,
		view:     BoardView,
		store:    opts.Store,
		searcher: opts.Searcher,
		logger:   opts.Logger,
		debounce: opts.Debounce,
		pageSize: opts.PageSize,
		help:     help.New(),
		keys:     newKeyMap(),
		drag:     NewDragController(DefaultDragThreshold),
	}
	m.library = newLibraryState()
	m.search = newSearchState()
	return m
}

// Init loads the collection from the backend.
func (m *Model) Init() tea.Cmd {
	return m.loadCollection()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.library.setSize(msg.Width, msg.Height)
		m.search.setSize(msg.Width, msg.Height)
		m.rebuildBoard()
		return m, nil

	case tea.MouseMsg:
		if m.view == BoardView {
			return m.handleBoardMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BoardView:
			return m.handleBoardKeys(msg)
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case collectionLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.refresh()
		return m, nil

	case statusSavedMsg:
		if msg.err != nil {
			if m.store.RollbackMove(msg.id, msg.prior, msg.attempted) {
				m.notice = fmt.Sprintf("move failed, reverted to %s", msg.prior.Label())
			} else {
				m.notice = "move failed"
			}
		} else if msg.entry != nil {
			m.store.Reconcile(*msg.entry)
		}
		m.refresh()
		return m, nil

	case entrySavedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("save failed: %v", msg.err)
			return m, nil
		}
		m.notice = fmt.Sprintf("saved %s", msg.entry.Game.Title)
		m.view = m.detail.origin
		m.refresh()
		return m, nil

	case entryRemovedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("remove failed: %v", msg.err)
			return m, nil
		}
		m.notice = "entry removed"
		m.refresh()
		return m, nil

	case gameAddedMsg:
		return m.handleGameAdded(msg)

	case searchTickMsg:
		return m.handleSearchTick(msg)

	case searchResultsMsg:
		return m.handleSearchResults(msg)
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case BoardView:
		return m.renderBoard()
	case LibraryView:
		return m.renderLibrary()
	case DashboardView:
		return m.renderDashboard()
	case SearchView:
		return m.renderSearch()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

// refresh rebuilds every derived view from the store snapshot.
func (m *Model) refresh() {
	m.rebuildBoard()
	m.library.reload(m.store.Snapshot())
	m.search.markOwned(m.store)
}

func (m *Model) rebuildBoard() {
	groups := views.GroupByStatus(m.store.Snapshot())
	m.layout = newBoardLayout(groups, m.width, m.boardHeight())
	m.clampSelection()
}

// boardHeight leaves room for the notice and help lines.
func (m *Model) boardHeight() int {
	h := m.height - 3
	if h < headerRows+cardRows {
		h = headerRows + cardRows
	}
	return h
}

func (m *Model) clampSelection() {
	if len(m.layout.columns) == 0 {
		m.selCol, m.selRow = 0, 0
		return
	}
	if m.selCol >= len(m.layout.columns) {
		m.selCol = len(m.layout.columns) - 1
	}
	if m.selCol < 0 {
		m.selCol = 0
	}
	cards := m.layout.columns[m.selCol].cards
	if m.selRow >= len(cards) {
		m.selRow = len(cards) - 1
	}
	if m.selRow < 0 {
		m.selRow = 0
	}
}

func (m *Model) selectedCard() (cardLayout, bool) {
	if m.selCol >= len(m.layout.columns) {
		return cardLayout{}, false
	}
	cards := m.layout.columns[m.selCol].cards
	if m.selRow >= len(cards) {
		return cardLayout{}, false
	}
	return cards[m.selRow], true
}

func (m *Model) handleBoardMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if card, ok := m.layout.hitCard(msg.X, msg.Y); ok {
			m.drag.Press(card.entryID, card.status, msg.X, msg.Y)
		}
		return m, nil

	case tea.MouseActionMotion:
		m.drag.Move(msg.X, msg.Y)
		return m, nil

	case tea.MouseActionRelease:
		id, target, ok := m.drag.Release(m.layout.zones())
		if !ok {
			return m, nil
		}
		return m, m.moveEntry(id, target)
	}
	return m, nil
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.err = nil
		return m, m.loadCollection()
	case key.Matches(msg, m.keys.library):
		m.view = LibraryView
		return m, nil
	case key.Matches(msg, m.keys.stats):
		m.view = DashboardView
		return m, nil
	case key.Matches(msg, m.keys.search):
		return m, m.openSearch()
	case key.Matches(msg, m.keys.left):
		m.selCol--
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.right):
		m.selCol++
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.up):
		m.selRow--
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.selRow++
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if card, ok := m.selectedCard(); ok {
			return m, m.openDetail(card.entryID, BoardView)
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if card, ok := m.selectedCard(); ok {
			return m, m.removeEntry(card.entryID)
		}
		return m, nil
	}

	switch msg.String() {
	case "<":
		return m, m.moveSelected(-1)
	case ">":
		return m, m.moveSelected(1)
	}
	return m, nil
}

// moveSelected shifts the selected card one column in the given direction.
func (m *Model) moveSelected(dir int) tea.Cmd {
	card, ok := m.selectedCard()
	if !ok {
		return nil
	}
	target := m.selCol + dir
	if target < 0 || target >= len(m.layout.columns) {
		return nil
	}
	return m.moveEntry(card.entryID, m.layout.columns[target].status)
}

// moveEntry runs the optimistic protocol: the local move lands immediately,
// the remote update resolves in the background, and statusSavedMsg settles
// the outcome.
func (m *Model) moveEntry(id string, target models.Status) tea.Cmd {
	prior, err := m.store.MoveStatus(id, target)
	if err != nil {
		m.notice = fmt.Sprintf("move failed: %v", err)
		return nil
	}
	m.refresh()
	m.notice = fmt.Sprintf("moving to %s", target.Label())

	return func() tea.Msg {
		entry, err := m.store.PushStatus(m.ctx, id, target)
		return statusSavedMsg{id: id, prior: prior, attempted: target, entry: entry, err: err}
	}
}

func (m *Model) loadCollection() tea.Cmd {
	return func() tea.Msg {
		return collectionLoadedMsg{err: m.store.LoadAll(m.ctx)}
	}
}

func (m *Model) removeEntry(id string) tea.Cmd {
	return func() tea.Msg {
		return entryRemovedMsg{id: id, err: m.store.Remove(m.ctx, id)}
	}
}

func (m *Model) renderBoard() string {
	board := m.layout.render(m.drag.ActiveID())

	sel := ""
	if card, ok := m.selectedCard(); ok {
		sel = styles.title.Render(truncate(card.title, m.width))
	}

	status := m.statusLine()
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n%s\n%s %s", board, sel, status, helpView)
}

func (m *Model) statusLine() string {
	if m.notice == "" {
		return ""
	}
	return styles.warn.Render(m.notice)
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.board):
		m.view = BoardView
		return m, nil
	case key.Matches(msg, m.keys.library):
		m.view = LibraryView
		return m, nil
	case key.Matches(msg, m.keys.search):
		return m, m.openSearch()
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadCollection()
	}
	return m, nil
}
