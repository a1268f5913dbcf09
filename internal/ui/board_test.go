package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/views"
)

func testEntries() []models.CollectionEntry {
	now := time.Now()
	return []models.CollectionEntry{
		{ID: "entry-1", Game: models.GameRecord{ID: "game-1", Title: "Hollow Knight"}, Status: models.StatusBacklog, UpdatedAt: now},
		{ID: "entry-2", Game: models.GameRecord{ID: "game-2", Title: "Celeste"}, Status: models.StatusPlaying, UpdatedAt: now},
		{ID: "entry-3", Game: models.GameRecord{ID: "game-3", Title: "Outer Wilds"}, Status: models.StatusBacklog, UpdatedAt: now},
	}
}

func TestBoardLayout(t *testing.T) {
	groups := views.GroupByStatus(testEntries())

	t.Run("places one column per status", func(t *testing.T) {
		l := newBoardLayout(groups, 90, 20)
		if len(l.columns) != len(models.Statuses) {
			t.Fatalf("expected %d columns, got %d", len(models.Statuses), len(l.columns))
		}
		for i, col := range l.columns {
			if col.status != models.Statuses[i] {
				t.Errorf("column %d: expected %s, got %s", i, models.Statuses[i], col.status)
			}
		}
	})

	t.Run("columns do not overlap", func(t *testing.T) {
		l := newBoardLayout(groups, 90, 20)
		for i := 1; i < len(l.columns); i++ {
			prev := l.columns[i-1].bounds
			cur := l.columns[i].bounds
			if cur.X < prev.X+prev.W {
				t.Errorf("column %d starts at %d inside previous column ending at %d", i, cur.X, prev.X+prev.W)
			}
		}
	})

	t.Run("cards land inside their column", func(t *testing.T) {
		l := newBoardLayout(groups, 90, 20)
		for _, col := range l.columns {
			for _, c := range col.cards {
				if !col.bounds.Contains(c.bounds.X, c.bounds.Y) {
					t.Errorf("card %s outside column %s", c.entryID, col.status)
				}
			}
		}
	})

	t.Run("hit test finds the card under the pointer", func(t *testing.T) {
		l := newBoardLayout(groups, 90, 20)
		var backlog columnLayout
		for _, col := range l.columns {
			if col.status == models.StatusBacklog {
				backlog = col
			}
		}
		if len(backlog.cards) != 2 {
			t.Fatalf("expected 2 backlog cards, got %d", len(backlog.cards))
		}

		first := backlog.cards[0]
		card, ok := l.hitCard(first.bounds.X+1, first.bounds.Y+1)
		if !ok || card.entryID != first.entryID {
			t.Errorf("expected %s, got %s ok=%v", first.entryID, card.entryID, ok)
		}

		if _, ok := l.hitCard(first.bounds.X+1, l.height-1); ok {
			t.Error("expected empty column space below the cards to miss")
		}
	})

	t.Run("zones cover every card and column", func(t *testing.T) {
		l := newBoardLayout(groups, 90, 20)
		zones := l.zones()

		cards := 0
		cols := 0
		for _, z := range zones {
			if z.EntryID != "" {
				cards++
			} else {
				cols++
			}
		}
		if cards != 3 {
			t.Errorf("expected 3 card zones, got %d", cards)
		}
		if cols != len(models.Statuses) {
			t.Errorf("expected %d column zones, got %d", len(models.Statuses), cols)
		}
	})

	t.Run("overflow cards are counted but not placed", func(t *testing.T) {
		many := make([]models.CollectionEntry, 12)
		for i := range many {
			many[i] = models.CollectionEntry{
				ID:     fmt.Sprintf("entry-%d", i),
				Game:   models.GameRecord{Title: fmt.Sprintf("Game %d", i)},
				Status: models.StatusBacklog,
			}
		}
		l := newBoardLayout(views.GroupByStatus(many), 90, 14)

		var backlog columnLayout
		for _, col := range l.columns {
			if col.status == models.StatusBacklog {
				backlog = col
			}
		}
		if backlog.count != 12 {
			t.Errorf("expected count 12, got %d", backlog.count)
		}
		capacity := (14 - headerRows) / cardRows
		if len(backlog.cards) != capacity {
			t.Errorf("expected %d placed cards, got %d", capacity, len(backlog.cards))
		}
	})

	t.Run("empty snapshot yields no columns", func(t *testing.T) {
		l := newBoardLayout(nil, 90, 20)
		if len(l.columns) != 0 {
			t.Errorf("expected no columns, got %d", len(l.columns))
		}
	})
}
