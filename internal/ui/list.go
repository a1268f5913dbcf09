package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/questlog/internal/models"
)

var (
	_ list.Item = entryItem{}
	_ list.Item = resultItem{}
)

// entryItem wraps [models.CollectionEntry] to implement [list.Item].
type entryItem struct {
	entry models.CollectionEntry
}

func (i entryItem) FilterValue() string { return i.entry.Game.Title }
func (i entryItem) Title() string       { return i.entry.Game.Title }
func (i entryItem) Description() string {
	parts := []string{i.entry.Status.Label()}
	if i.entry.SelectedPlatform != "" {
		parts = append(parts, i.entry.SelectedPlatform)
	}
	if i.entry.ProgressPercent > 0 {
		parts = append(parts, fmt.Sprintf("%d%%", i.entry.ProgressPercent))
	}
	if i.entry.Rating > 0 {
		parts = append(parts, strings.Repeat("★", i.entry.Rating))
	}
	return strings.Join(parts, " • ")
}

// resultItem wraps a catalog search hit to implement [list.Item].
type resultItem struct {
	game  models.GameRecord
	owned bool
}

func (i resultItem) FilterValue() string { return i.game.Title }
func (i resultItem) Title() string {
	if i.owned {
		return i.game.Title + " ✓"
	}
	return i.game.Title
}

func (i resultItem) Description() string {
	parts := []string{}
	if i.game.ReleaseDate != "" {
		parts = append(parts, i.game.ReleaseDate)
	}
	if len(i.game.Platforms) > 0 {
		parts = append(parts, strings.Join(i.game.Platforms, ", "))
	}
	if len(parts) == 0 {
		return "no release details"
	}
	return strings.Join(parts, " • ")
}
