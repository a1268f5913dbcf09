package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/questlog/internal/collection"
	"github.com/desertthunder/questlog/internal/models"
)

// minQueryLen gates catalog requests; shorter input clears the results.
const minQueryLen = 2

// searchState drives the add-game flow: a debounced text input over the
// catalog, a result list, and pagination.
type searchState struct {
	input   textinput.Model
	list    list.Model
	seq     int
	offset  int
	query   string
	results []models.GameRecord
	owned   map[string]bool
	pending bool
	err     error
}

func newSearchState() searchState {
	in := textinput.New()
	in.Placeholder = "search the catalog"
	in.CharLimit = 120

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Add a Game"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return searchState{input: in, list: l, owned: map[string]bool{}}
}

func (s *searchState) setSize(width, height int) {
	s.input.Width = width - 8
	s.list.SetSize(width-4, height-8)
}

// markOwned refreshes the duplicate markers against the current collection.
func (s *searchState) markOwned(store ownedIndex) {
	s.owned = map[string]bool{}
	for _, g := range s.results {
		if _, ok := store.FindByProvider(g.Provider, g.ProviderID); ok {
			s.owned[g.ProviderID] = true
		}
	}
	s.fill()
}

// ownedIndex is the slice of the store the search view needs.
type ownedIndex interface {
	FindByProvider(provider, providerID string) (models.CollectionEntry, bool)
}

func (s *searchState) fill() {
	items := make([]list.Item, len(s.results))
	for i, g := range s.results {
		items[i] = resultItem{game: g, owned: s.owned[g.ProviderID]}
	}
	s.list.SetItems(items)
}

func (s *searchState) reset() {
	s.input.Reset()
	s.input.Focus()
	s.offset = 0
	s.query = ""
	s.results = nil
	s.owned = map[string]bool{}
	s.pending = false
	s.err = nil
	s.fill()
}

// openSearch switches to the search view with a cleared query.
func (m *Model) openSearch() tea.Cmd {
	m.view = SearchView
	m.search.reset()
	return textinput.Blink
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// "q" types into the query; only ctrl+c quits here
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = BoardView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		item, ok := m.search.list.SelectedItem().(resultItem)
		if !ok {
			return m, nil
		}
		if item.owned {
			m.notice = fmt.Sprintf("%s is already in your collection", item.game.Title)
			return m, nil
		}
		return m, m.addGame(item.game)
	}

	switch msg.String() {
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.search.list, cmd = m.search.list.Update(msg)
		return m, cmd
	case "ctrl+n":
		return m, m.turnPage(m.pageSize)
	case "ctrl+p":
		return m, m.turnPage(-m.pageSize)
	}

	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)

	if m.search.input.Value() != before {
		m.search.offset = 0
		return m, tea.Batch(cmd, m.scheduleSearch())
	}
	return m, cmd
}

// scheduleSearch debounces keystrokes: every edit bumps the sequence and
// only the tick carrying the latest sequence fires a request.
func (m *Model) scheduleSearch() tea.Cmd {
	m.search.seq++
	seq := m.search.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m *Model) handleSearchTick(msg searchTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.search.seq {
		return m, nil
	}

	query := strings.TrimSpace(m.search.input.Value())
	if len(query) < minQueryLen {
		m.search.results = nil
		m.search.query = ""
		m.search.fill()
		return m, nil
	}

	return m, m.runSearch(query, m.search.offset)
}

func (m *Model) runSearch(query string, offset int) tea.Cmd {
	m.search.pending = true
	token := m.searcher.Begin()
	return func() tea.Msg {
		return searchResultsMsg(m.searcher.Run(m.ctx, token, query, m.pageSize, offset))
	}
}

func (m *Model) handleSearchResults(msg searchResultsMsg) (tea.Model, tea.Cmd) {
	res := collection.SearchResult(msg)
	if !m.searcher.Accept(res) {
		return m, nil
	}

	m.search.pending = false
	if res.Err != nil {
		m.search.err = res.Err
		return m, nil
	}

	m.search.err = nil
	m.search.query = res.Query
	m.search.results = res.Results
	m.search.markOwned(m.store)
	return m, nil
}

// turnPage fetches the adjacent result page for the current query.
func (m *Model) turnPage(delta int) tea.Cmd {
	if m.search.query == "" {
		return nil
	}
	next := m.search.offset + delta
	if next < 0 {
		next = 0
	}
	if next == m.search.offset && delta < 0 {
		return nil
	}
	m.search.offset = next
	return m.runSearch(m.search.query, next)
}

// addGame runs the two-phase add against the backend.
func (m *Model) addGame(game models.GameRecord) tea.Cmd {
	m.notice = fmt.Sprintf("adding %s", game.Title)
	return func() tea.Msg {
		entry, err := m.store.AddGame(m.ctx, models.DraftFromRecord(game))
		return gameAddedMsg{entry: entry, err: err}
	}
}

func (m *Model) handleGameAdded(msg gameAddedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice = fmt.Sprintf("add failed: %v", msg.err)
		return m, nil
	}
	m.notice = fmt.Sprintf("added %s", msg.entry.Game.Title)
	m.refresh()
	return m, nil
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Add a Game")
	input := m.search.input.View()

	var body string
	switch {
	case m.search.err != nil:
		body = styles.err.Render(fmt.Sprintf("search failed: %v", m.search.err))
	case m.search.pending:
		body = styles.help.Render("searching...")
	case m.search.query == "":
		body = styles.help.Render("type at least two characters")
	case len(m.search.results) == 0:
		body = styles.help.Render(fmt.Sprintf("no results for %q", m.search.query))
	default:
		body = m.search.list.View()
	}

	pageHints := []key.Binding{
		key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next page")),
		key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev page")),
	}
	helpView := m.help.ShortHelpView(append(pageHints, m.keys.enter, m.keys.back, m.keys.quit))
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n%s", title, input, body, m.statusLine(), helpView)
}
