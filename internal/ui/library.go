package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/views"
)

// libraryState holds the flat library view: the full snapshot, the active
// filter/sort spec, and the list rendering the derived slice.
type libraryState struct {
	list      list.Model
	all       []models.CollectionEntry
	filter    models.FilterSpec
	platforms []string
	genres    []string
}

func newLibraryState() libraryState {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Library"
	l.SetShowStatusBar(false)

	s := libraryState{list: l}
	s.filter.Reset()
	return s
}

func (s *libraryState) setSize(width, height int) {
	s.list.SetSize(width-4, height-6)
}

// reload replaces the snapshot and re-derives the visible slice.
func (s *libraryState) reload(entries []models.CollectionEntry) {
	s.all = entries
	s.platforms, s.genres = views.Facets(entries)
	s.applyFilter()
}

// applyFilter re-derives the visible slice. Title search is delegated to the
// list component's own filter, so the spec here carries platform, genre, and
// sort only.
func (s *libraryState) applyFilter() {
	visible := views.Apply(s.all, models.FilterSpec{
		Platform: s.filter.Platform,
		Genre:    s.filter.Genre,
		Sort:     s.filter.Sort,
	})

	items := make([]list.Item, len(visible))
	for i, e := range visible {
		items[i] = entryItem{entry: e}
	}
	s.list.SetItems(items)
	s.list.Title = s.title()
}

func (s *libraryState) title() string {
	parts := []string{"Library"}
	if s.filter.Platform != "" {
		parts = append(parts, s.filter.Platform)
	}
	if s.filter.Genre != "" {
		parts = append(parts, s.filter.Genre)
	}
	if s.filter.Sort != models.SortUpdatedDesc {
		parts = append(parts, string(s.filter.Sort))
	}
	return strings.Join(parts, " · ")
}

// cycle advances through options with "" (no filter) between wraps.
func cycle(current string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	for i, opt := range options {
		if opt == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return ""
		}
	}
	return options[0]
}

func (s *libraryState) cyclePlatform() { s.filter.Platform = cycle(s.filter.Platform, s.platforms); s.applyFilter() }
func (s *libraryState) cycleGenre()    { s.filter.Genre = cycle(s.filter.Genre, s.genres); s.applyFilter() }

func (s *libraryState) cycleSort() {
	for i, k := range models.SortKeys {
		if k == s.filter.Sort {
			s.filter.Sort = models.SortKeys[(i+1)%len(models.SortKeys)]
			s.applyFilter()
			return
		}
	}
	s.filter.Sort = models.SortUpdatedDesc
	s.applyFilter()
}

func (s *libraryState) clearFilter() {
	s.filter.Reset()
	s.list.ResetFilter()
	s.applyFilter()
}

func (s *libraryState) selected() (models.CollectionEntry, bool) {
	if item, ok := s.list.SelectedItem().(entryItem); ok {
		return item.entry, true
	}
	return models.CollectionEntry{}, false
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the list owns keys while its title filter is active
	if m.library.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.library.list, cmd = m.library.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.board):
		m.view = BoardView
		return m, nil
	case key.Matches(msg, m.keys.stats):
		m.view = DashboardView
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadCollection()
	case key.Matches(msg, m.keys.enter):
		if e, ok := m.library.selected(); ok {
			return m, m.openDetail(e.ID, LibraryView)
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if e, ok := m.library.selected(); ok {
			return m, m.removeEntry(e.ID)
		}
		return m, nil
	}

	switch msg.String() {
	case "p":
		m.library.cyclePlatform()
		return m, nil
	case "g":
		m.library.cycleGenre()
		return m, nil
	case "s":
		m.library.cycleSort()
		return m, nil
	case "c":
		m.library.clearFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.library.list, cmd = m.library.list.Update(msg)
	return m, cmd
}

func (m *Model) renderLibrary() string {
	filterHints := []key.Binding{
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "platform")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	}
	helpView := m.help.ShortHelpView(append(filterHints, m.keys.back, m.keys.quit))
	return fmt.Sprintf("%s\n%s\n%s", m.library.list.View(), m.statusLine(), helpView)
}
