package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/questlog/internal/collection"
	"github.com/desertthunder/questlog/internal/models"
	tu "github.com/desertthunder/questlog/internal/testing"
)

func newTestModel(t *testing.T, gw *tu.MockGateway) *Model {
	t.Helper()

	store := collection.NewStore(gw, nil)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	m := NewModel(context.Background(), ModelOpts{
		Store:    store,
		Searcher: collection.NewSearcher(gw),
	})
	m.Update(tea.WindowSizeMsg{Width: 90, Height: 24})
	return m
}

func (m *Model) column(t *testing.T, status models.Status) columnLayout {
	t.Helper()
	for _, col := range m.layout.columns {
		if col.status == status {
			return col
		}
	}
	t.Fatalf("no column for %s", status)
	return columnLayout{}
}

func entryStatus(t *testing.T, m *Model, id string) models.Status {
	t.Helper()
	e, ok := m.store.Entry(id)
	if !ok {
		t.Fatalf("entry %s not found", id)
	}
	return e.Status
}

func TestBoardDrag(t *testing.T) {
	t.Run("drop moves the card before the network resolves", func(t *testing.T) {
		gw := &tu.MockGateway{Entries: testEntries()}
		m := newTestModel(t, gw)

		card := m.column(t, models.StatusBacklog).cards[0]
		target := m.column(t, models.StatusPlaying).bounds

		m.Update(tea.MouseMsg{X: card.bounds.X + 1, Y: card.bounds.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m.Update(tea.MouseMsg{X: target.X + 2, Y: target.Y + 10, Action: tea.MouseActionMotion})
		_, cmd := m.Update(tea.MouseMsg{X: target.X + 2, Y: target.Y + 10, Action: tea.MouseActionRelease})

		if cmd == nil {
			t.Fatal("expected a push command from the drop")
		}
		if got := entryStatus(t, m, card.entryID); got != models.StatusPlaying {
			t.Errorf("expected optimistic playing, got %s", got)
		}
		if gw.StatusCalls != 0 {
			t.Errorf("expected no remote call before the command runs, got %d", gw.StatusCalls)
		}

		m.Update(cmd())
		if gw.StatusCalls != 1 {
			t.Errorf("expected exactly one remote call, got %d", gw.StatusCalls)
		}
		if got := entryStatus(t, m, card.entryID); got != models.StatusPlaying {
			t.Errorf("expected playing after reconcile, got %s", got)
		}
	})

	t.Run("failed push rolls the card back", func(t *testing.T) {
		gw := &tu.MockGateway{Entries: testEntries(), StatusErr: errors.New("backend down")}
		m := newTestModel(t, gw)

		card := m.column(t, models.StatusPlaying).cards[0]
		target := m.column(t, models.StatusCompleted).bounds

		m.Update(tea.MouseMsg{X: card.bounds.X + 1, Y: card.bounds.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m.Update(tea.MouseMsg{X: target.X + 2, Y: target.Y + 10, Action: tea.MouseActionMotion})
		_, cmd := m.Update(tea.MouseMsg{X: target.X + 2, Y: target.Y + 10, Action: tea.MouseActionRelease})

		if got := entryStatus(t, m, card.entryID); got != models.StatusCompleted {
			t.Fatalf("expected optimistic completed, got %s", got)
		}

		m.Update(cmd())
		if got := entryStatus(t, m, card.entryID); got != models.StatusPlaying {
			t.Errorf("expected rollback to playing, got %s", got)
		}
	})

	t.Run("release without a target leaves the board alone", func(t *testing.T) {
		gw := &tu.MockGateway{Entries: testEntries()}
		m := newTestModel(t, gw)

		card := m.column(t, models.StatusBacklog).cards[0]
		m.Update(tea.MouseMsg{X: card.bounds.X + 1, Y: card.bounds.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		_, cmd := m.Update(tea.MouseMsg{X: card.bounds.X + 1, Y: card.bounds.Y + 1, Action: tea.MouseActionRelease})

		if cmd != nil {
			t.Error("expected no command from a plain click")
		}
		if got := entryStatus(t, m, card.entryID); got != models.StatusBacklog {
			t.Errorf("expected backlog, got %s", got)
		}
	})
}

func TestBoardKeyboardMove(t *testing.T) {
	gw := &tu.MockGateway{Entries: testEntries()}
	m := newTestModel(t, gw)

	// select the backlog column, second from the left
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	card, ok := m.selectedCard()
	if !ok {
		t.Fatal("expected a selected card in the backlog column")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'>'}})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	if got := entryStatus(t, m, card.entryID); got != models.StatusPaused {
		t.Errorf("expected move to paused, got %s", got)
	}

	m.Update(cmd())
	if gw.StatusCalls != 1 {
		t.Errorf("expected one remote call, got %d", gw.StatusCalls)
	}
}

func TestSearchSupersession(t *testing.T) {
	t.Run("stale debounce ticks are ignored", func(t *testing.T) {
		gw := &tu.MockGateway{}
		m := newTestModel(t, gw)
		m.view = SearchView
		m.search.seq = 4

		if _, cmd := m.Update(searchTickMsg{seq: 3}); cmd != nil {
			t.Error("expected a stale tick to fire no search")
		}
	})

	t.Run("stale results are discarded", func(t *testing.T) {
		gw := &tu.MockGateway{SearchResults: map[string][]models.GameRecord{
			"zelda": {{ID: "g1", Title: "Zelda", ProviderID: "p1"}},
			"mario": {{ID: "g2", Title: "Mario", ProviderID: "p2"}},
		}}
		m := newTestModel(t, gw)
		m.view = SearchView

		staleToken := m.searcher.Begin()
		stale := m.searcher.Run(context.Background(), staleToken, "zelda", 9, 0)

		freshToken := m.searcher.Begin()
		fresh := m.searcher.Run(context.Background(), freshToken, "mario", 9, 0)

		m.Update(searchResultsMsg(fresh))
		m.Update(searchResultsMsg(stale))

		if len(m.search.results) != 1 || m.search.results[0].Title != "Mario" {
			t.Errorf("expected the fresh Mario result to stand, got %+v", m.search.results)
		}
	})

	t.Run("owned results are marked as duplicates", func(t *testing.T) {
		entries := testEntries()
		entries[0].Game.Provider = "igdb"
		entries[0].Game.ProviderID = "p1"
		gw := &tu.MockGateway{
			Entries: entries,
			SearchResults: map[string][]models.GameRecord{
				"hollow": {{ID: "g1", Title: "Hollow Knight", Provider: "igdb", ProviderID: "p1"}},
			},
		}
		m := newTestModel(t, gw)
		m.view = SearchView

		token := m.searcher.Begin()
		res := m.searcher.Run(context.Background(), token, "hollow", 9, 0)
		m.Update(searchResultsMsg(res))

		if !m.search.owned["p1"] {
			t.Error("expected the collection entry to be marked owned")
		}
	})
}
